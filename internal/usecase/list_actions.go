package usecase

import (
	"context"

	"github.com/trebuchet-org/minion/internal/domain/models"
)

// ActionView is a queued action with the status of its proposal
type ActionView struct {
	Action         models.DelegatedAction
	ProposalStatus models.ProposalStatus
	Call           string
}

// ListActions lists the minion's actions
type ListActions struct {
	sessions *Sessions
	codec    CallCodec
}

// NewListActions creates a new list actions use case
func NewListActions(sessions *Sessions, codec CallCodec) *ListActions {
	return &ListActions{sessions: sessions, codec: codec}
}

// Run lists actions ordered by proposal id
func (uc *ListActions) Run(ctx context.Context) ([]ActionView, error) {
	var views []ActionView
	err := uc.sessions.View(ctx, func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		for _, a := range g.Minion.Actions() {
			status, err := g.Ledger.StatusOf(a.ProposalID)
			if err != nil {
				return err
			}
			views = append(views, ActionView{Action: a, ProposalStatus: status, Call: uc.codec.Describe(a.Data)})
		}
		return nil
	})
	return views, err
}
