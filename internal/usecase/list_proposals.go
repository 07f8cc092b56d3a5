package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// ListProposals lists proposals with their derived status
type ListProposals struct {
	sessions *Sessions
}

// NewListProposals creates a new list proposals use case
func NewListProposals(sessions *Sessions) *ListProposals {
	return &ListProposals{sessions: sessions}
}

// ListProposalsParams contains filter parameters
type ListProposalsParams struct {
	Statuses []models.ProposalStatus
	Queued   bool // only sponsored proposals, in queue order
}

// ListProposalsResult contains the matching proposals
type ListProposalsResult struct {
	Proposals []ProposalView
	ByStatus  map[models.ProposalStatus]int
	Now       time.Time
}

// Run lists proposals in id order, or queue order when Queued is set
func (uc *ListProposals) Run(ctx context.Context, params ListProposalsParams) (*ListProposalsResult, error) {
	result := &ListProposalsResult{ByStatus: make(map[models.ProposalStatus]int)}
	err := uc.sessions.View(ctx, func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		result.Now = s.Clock.Now()

		ids := lo.Map(g.Ledger.Proposals(), func(p models.Proposal, _ int) uint64 { return p.ID })
		if params.Queued {
			ids = g.Ledger.Queue()
		}
		for _, id := range ids {
			view, err := viewProposal(g, result.Now, id)
			if err != nil {
				return err
			}
			if len(params.Statuses) > 0 && !lo.Contains(params.Statuses, view.Status) {
				continue
			}
			result.ByStatus[view.Status]++
			result.Proposals = append(result.Proposals, *view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
