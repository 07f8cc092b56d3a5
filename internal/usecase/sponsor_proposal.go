package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
)

// SponsorProposal puts a submitted proposal in the voting queue
type SponsorProposal struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewSponsorProposal creates a new sponsor proposal use case
func NewSponsorProposal(sessions *Sessions, log *slog.Logger) *SponsorProposal {
	return &SponsorProposal{sessions: sessions, log: log}
}

// SponsorProposalParams contains parameters for sponsoring
type SponsorProposalParams struct {
	From       common.Address
	ProposalID uint64
}

// Run sponsors the proposal, escrowing the deposit from the sponsor
func (uc *SponsorProposal) Run(ctx context.Context, params SponsorProposalParams) (*ProposalView, error) {
	var view *ProposalView
	err := uc.sessions.Mutate(ctx, "sponsor", func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		if err := g.Ledger.Sponsor(params.ProposalID, params.From); err != nil {
			return err
		}
		view, err = viewProposal(g, s.Clock.Now(), params.ProposalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("proposal sponsored", "proposal", params.ProposalID, "sponsor", params.From.Hex(),
		"votingStartsAt", view.Proposal.VotingStartsAt, "gracePeriodEndsAt", view.Proposal.GracePeriodEndsAt)
	return view, nil
}
