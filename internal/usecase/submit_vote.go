package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// SubmitVote casts a member's ballot
type SubmitVote struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewSubmitVote creates a new submit vote use case
func NewSubmitVote(sessions *Sessions, log *slog.Logger) *SubmitVote {
	return &SubmitVote{sessions: sessions, log: log}
}

// SubmitVoteParams contains parameters for voting
type SubmitVoteParams struct {
	From       common.Address
	ProposalID uint64
	Choice     models.VoteChoice
}

// SubmitVoteResult contains the ballot and the updated proposal
type SubmitVoteResult struct {
	Vote     models.Vote
	Proposal *ProposalView
}

// Run casts the vote
func (uc *SubmitVote) Run(ctx context.Context, params SubmitVoteParams) (*SubmitVoteResult, error) {
	result := &SubmitVoteResult{}
	err := uc.sessions.Mutate(ctx, "vote", func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		if result.Vote, err = g.Voting.CastVote(params.ProposalID, params.From, params.Choice); err != nil {
			return err
		}
		result.Proposal, err = viewProposal(g, s.Clock.Now(), params.ProposalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("vote cast", "proposal", params.ProposalID, "voter", params.From.Hex(),
		"choice", params.Choice.String(), "weight", result.Vote.Weight)
	return result, nil
}
