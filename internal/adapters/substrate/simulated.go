// Package substrate attaches the in-memory execution substrate and the world
// clock to a loaded world.
package substrate

import (
	"github.com/trebuchet-org/minion/internal/adapters/clock"
	"github.com/trebuchet-org/minion/internal/adapters/evm"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/governance"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// SimulatedAdapter implements Runtime with the evm simulator
type SimulatedAdapter struct {
	clock usecase.TimeMachine
}

// NewSimulatedAdapter creates a runtime whose clock is wall time shifted by
// the world's stored offset
func NewSimulatedAdapter() *SimulatedAdapter {
	return &SimulatedAdapter{}
}

// NewSimulatedAdapterWithClock creates a runtime driven by a fixed clock
func NewSimulatedAdapterWithClock(clk usecase.TimeMachine) *SimulatedAdapter {
	return &SimulatedAdapter{clock: clk}
}

// Attach builds a simulator over world
func (a *SimulatedAdapter) Attach(world *models.WorldState) (usecase.Chain, usecase.TimeMachine) {
	clk := a.clock
	if clk == nil {
		clk = clock.NewSystemClock(world)
	}
	return &chain{Simulator: evm.NewSimulator(world)}, clk
}

type chain struct {
	*evm.Simulator
}

func (c *chain) BindGuild(g *governance.Guild) {
	c.BindAuthorizer(g.Authorizer)
}

var _ usecase.Runtime = (*SimulatedAdapter)(nil)
