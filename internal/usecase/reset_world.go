package usecase

import (
	"context"
	"log/slog"
)

// ResetWorldResult reports what a reset dropped
type ResetWorldResult struct {
	HadGuild     bool
	Proposals    int
	Tokens       int
	Collectibles int
}

// ResetWorld drops the stored world so the next command starts fresh
type ResetWorld struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewResetWorld creates a new reset world use case
func NewResetWorld(sessions *Sessions, log *slog.Logger) *ResetWorld {
	return &ResetWorld{sessions: sessions, log: log}
}

// Run removes the world
func (uc *ResetWorld) Run(ctx context.Context) (*ResetWorldResult, error) {
	result := &ResetWorldResult{}
	err := uc.sessions.View(ctx, func(s *Session) error {
		result.Tokens = len(s.World.Tokens)
		result.Collectibles = len(s.World.Collectibles)
		if g, err := s.Guild(); err == nil {
			result.HadGuild = true
			result.Proposals = len(g.Ledger.Proposals())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Reset(ctx); err != nil {
		return nil, err
	}

	uc.log.Info("world reset", "proposals", result.Proposals, "tokens", result.Tokens)
	return result, nil
}
