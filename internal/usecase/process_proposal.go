package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/governance"
)

// ProcessProposal finalises a proposal after its grace period
type ProcessProposal struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewProcessProposal creates a new process proposal use case
func NewProcessProposal(sessions *Sessions, log *slog.Logger) *ProcessProposal {
	return &ProcessProposal{sessions: sessions, log: log}
}

// ProcessProposalParams contains parameters for processing
type ProcessProposalParams struct {
	From       common.Address
	ProposalID uint64
}

// ProcessProposalResult contains the outcome and the processed proposal
type ProcessProposalResult struct {
	Outcome  governance.Outcome
	Proposal *ProposalView
}

// Run processes the proposal. The caller receives the processing reward.
func (uc *ProcessProposal) Run(ctx context.Context, params ProcessProposalParams) (*ProcessProposalResult, error) {
	result := &ProcessProposalResult{}
	err := uc.sessions.Mutate(ctx, "process", func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		if _, result.Outcome, err = g.Ledger.Process(params.ProposalID, params.From); err != nil {
			return err
		}
		result.Proposal, err = viewProposal(g, s.Clock.Now(), params.ProposalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("proposal processed", "proposal", params.ProposalID, "passed", result.Outcome.Passed, "reason", result.Outcome.Reason)
	return result, nil
}
