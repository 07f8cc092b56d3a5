package usecase

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/governance"
)

// SubmitProposal records a membership, grant or tribute proposal
type SubmitProposal struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewSubmitProposal creates a new submit proposal use case
func NewSubmitProposal(sessions *Sessions, log *slog.Logger) *SubmitProposal {
	return &SubmitProposal{sessions: sessions, log: log}
}

// SubmitProposalParams contains parameters for a new proposal. Zero token
// addresses mean the guild's deposit token.
type SubmitProposalParams struct {
	From             common.Address
	Applicant        common.Address
	SharesRequested  uint64
	LootRequested    uint64
	TributeOffered   *big.Int
	TributeToken     common.Address
	PaymentRequested *big.Int
	PaymentToken     common.Address
	Description      string
}

// Run submits the proposal and escrows its tribute
func (uc *SubmitProposal) Run(ctx context.Context, params SubmitProposalParams) (*ProposalView, error) {
	var view *ProposalView
	err := uc.sessions.Mutate(ctx, "submit", func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		tributeToken, err := resolveToken(s, params.TributeToken)
		if err != nil {
			return err
		}
		paymentToken, err := resolveToken(s, params.PaymentToken)
		if err != nil {
			return err
		}
		id, err := g.Ledger.Submit(governance.SubmitParams{
			Proposer:         params.From,
			Applicant:        params.Applicant,
			SharesRequested:  params.SharesRequested,
			LootRequested:    params.LootRequested,
			TributeOffered:   params.TributeOffered,
			TributeToken:     tributeToken,
			PaymentRequested: params.PaymentRequested,
			PaymentToken:     paymentToken,
			Description:      params.Description,
		})
		if err != nil {
			return err
		}
		view, err = viewProposal(g, s.Clock.Now(), id)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("proposal submitted", "proposal", view.Proposal.ID, "proposer", params.From.Hex(), "applicant", params.Applicant.Hex())
	return view, nil
}
