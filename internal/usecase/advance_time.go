package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/trebuchet-org/minion/internal/domain"
)

// AdvanceTime moves the world's clock forward, the local stand-in for
// waiting out voting and grace periods
type AdvanceTime struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewAdvanceTime creates a new advance time use case
func NewAdvanceTime(sessions *Sessions, log *slog.Logger) *AdvanceTime {
	return &AdvanceTime{sessions: sessions, log: log}
}

// AdvanceTimeParams says how far to move. With ToProposal set the clock
// moves to the moment that proposal can be processed.
type AdvanceTimeParams struct {
	By         time.Duration
	ToProposal *uint64
}

// ClockResult reports the world's current time
type ClockResult struct {
	Now    time.Time
	Offset time.Duration
}

// Run advances the clock
func (uc *AdvanceTime) Run(ctx context.Context, params AdvanceTimeParams) (*ClockResult, error) {
	if params.By < 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "time only moves forward")
	}
	result := &ClockResult{}
	err := uc.sessions.Mutate(ctx, "advance-time", func(s *Session) error {
		by := params.By
		if params.ToProposal != nil {
			g, err := s.Guild()
			if err != nil {
				return err
			}
			p, err := g.Ledger.Proposal(*params.ToProposal)
			if err != nil {
				return err
			}
			if !p.Sponsored {
				return domain.ErrNotSponsored
			}
			by = p.GracePeriodEndsAt.Sub(s.Clock.Now())
		}
		s.Clock.Advance(by)
		result.Now = s.Clock.Now()
		result.Offset = s.World.ClockOffset
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("clock advanced", "now", result.Now)
	return result, nil
}

// CurrentTime reports the world's clock
type CurrentTime struct {
	sessions *Sessions
}

// NewCurrentTime creates a new current time use case
func NewCurrentTime(sessions *Sessions) *CurrentTime {
	return &CurrentTime{sessions: sessions}
}

// Run reads the clock
func (uc *CurrentTime) Run(ctx context.Context) (*ClockResult, error) {
	var result *ClockResult
	err := uc.sessions.View(ctx, func(s *Session) error {
		result = &ClockResult{Now: s.Clock.Now(), Offset: s.World.ClockOffset}
		return nil
	})
	return result, err
}
