package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
)

// CancelProposal withdraws an unsponsored proposal
type CancelProposal struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewCancelProposal creates a new cancel proposal use case
func NewCancelProposal(sessions *Sessions, log *slog.Logger) *CancelProposal {
	return &CancelProposal{sessions: sessions, log: log}
}

// CancelProposalParams contains parameters for cancelling
type CancelProposalParams struct {
	From       common.Address
	ProposalID uint64
}

// Run cancels the proposal and refunds its tribute
func (uc *CancelProposal) Run(ctx context.Context, params CancelProposalParams) (*ProposalView, error) {
	var view *ProposalView
	err := uc.sessions.Mutate(ctx, "cancel", func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		if err := g.Ledger.Cancel(params.ProposalID, params.From); err != nil {
			return err
		}
		view, err = viewProposal(g, s.Clock.Now(), params.ProposalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("proposal cancelled", "proposal", params.ProposalID)
	return view, nil
}
