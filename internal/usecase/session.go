package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/governance"
)

// Session is one loaded world with its chain, clock and guild attached
type Session struct {
	World *models.WorldState
	Chain Chain
	Clock TimeMachine

	guild *governance.Guild
}

// Guild returns the summoned guild
func (s *Session) Guild() (*governance.Guild, error) {
	if s.guild == nil {
		return nil, domain.ErrGuildNotSummoned
	}
	return s.guild, nil
}

func (s *Session) attachGuild() {
	s.guild = governance.NewGuild(s.World.Guild, s.Clock, s.Chain, s.Chain)
	s.Chain.BindGuild(s.guild)
}

// Sessions runs every use case as one load, mutate, save cycle so an
// operation either lands completely or leaves the stored world untouched
type Sessions struct {
	store   WorldStore
	runtime Runtime
	log     *slog.Logger
}

// NewSessions creates a session runner
func NewSessions(store WorldStore, runtime Runtime, log *slog.Logger) *Sessions {
	return &Sessions{store: store, runtime: runtime, log: log}
}

func (m *Sessions) open(ctx context.Context) (*Session, error) {
	world, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load world: %w", err)
	}
	return m.attach(world), nil
}

func (m *Sessions) attach(world *models.WorldState) *Session {
	world.Normalize()
	chain, clk := m.runtime.Attach(world)
	s := &Session{World: world, Chain: chain, Clock: clk}
	if world.Guild != nil {
		s.attachGuild()
	}
	return s
}

// Mutate runs fn inside one store update. The world is saved only if fn
// succeeds and no other operation can interleave with it.
func (m *Sessions) Mutate(ctx context.Context, op string, fn func(*Session) error) error {
	var opErr error
	err := m.store.Update(ctx, func(world *models.WorldState) error {
		opErr = fn(m.attach(world))
		return opErr
	})
	if opErr != nil {
		m.log.Debug("operation rejected, world unchanged", "op", op, "error", opErr)
		return opErr
	}
	if err != nil {
		return fmt.Errorf("failed to update world: %w", err)
	}
	m.log.Debug("world saved", "op", op)
	return nil
}

// View runs fn over a loaded world without saving
func (m *Sessions) View(ctx context.Context, fn func(*Session) error) error {
	s, err := m.open(ctx)
	if err != nil {
		return err
	}
	return fn(s)
}

// Reset drops the stored world
func (m *Sessions) Reset(ctx context.Context) error {
	return m.store.Reset(ctx)
}

// isActionFailure reports whether err is a delegated call that ran and failed.
// Those still commit: the action is spent.
func isActionFailure(err error) bool {
	var actionErr *domain.ActionError
	return errors.As(err, &actionErr)
}
