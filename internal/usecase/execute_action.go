package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// ExecuteAction makes the minion perform the call of a passed proposal
type ExecuteAction struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewExecuteAction creates a new execute action use case
func NewExecuteAction(sessions *Sessions, log *slog.Logger) *ExecuteAction {
	return &ExecuteAction{sessions: sessions, log: log}
}

// ExecuteActionParams contains parameters for execution
type ExecuteActionParams struct {
	From       common.Address
	ProposalID uint64
}

// Run executes the action. A call that ran and failed is still saved as
// failed and its error returned alongside the result.
func (uc *ExecuteAction) Run(ctx context.Context, params ExecuteActionParams) (*models.DelegatedAction, error) {
	var action models.DelegatedAction
	var callErr error
	err := uc.sessions.Mutate(ctx, "execute", func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		action, err = g.Minion.ExecuteAction(ctx, params.ProposalID)
		if isActionFailure(err) {
			callErr = err
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if callErr != nil {
		uc.log.Warn("action failed", "proposal", params.ProposalID, "executor", params.From.Hex(), "error", callErr)
		return &action, callErr
	}
	uc.log.Info("action executed", "proposal", params.ProposalID, "executor", params.From.Hex(), "target", action.Target.Hex())
	return &action, nil
}
