package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/config"
)

// ShowProposal loads one proposal with its votes, outcome and action
type ShowProposal struct {
	sessions *Sessions
	selector ProposalSelector
	cfg      *config.RuntimeConfig
}

// NewShowProposal creates a new show proposal use case
func NewShowProposal(sessions *Sessions, selector ProposalSelector, cfg *config.RuntimeConfig) *ShowProposal {
	return &ShowProposal{sessions: sessions, selector: selector, cfg: cfg}
}

// ShowProposalParams contains parameters for showing a proposal
type ShowProposalParams struct {
	// ProposalID is optional; without it the user picks interactively
	ProposalID *uint64
}

// Run resolves and loads the proposal
func (uc *ShowProposal) Run(ctx context.Context, params ShowProposalParams) (*ProposalView, error) {
	var views []ProposalView
	var view *ProposalView
	err := uc.sessions.View(ctx, func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		now := s.Clock.Now()
		if params.ProposalID != nil {
			view, err = viewProposal(g, now, *params.ProposalID)
			return err
		}
		for _, p := range g.Ledger.Proposals() {
			v, err := viewProposal(g, now, p.ID)
			if err != nil {
				return err
			}
			views = append(views, *v)
		}
		return nil
	})
	if err != nil || view != nil {
		return view, err
	}

	if len(views) == 0 {
		return nil, domain.Errorf(domain.ErrProposalNotFound, "the guild has no proposals")
	}
	if uc.cfg.NonInteractive {
		return nil, fmt.Errorf("proposal id required in non-interactive mode")
	}
	return uc.selector.SelectProposal(ctx, views, "Select a proposal")
}
