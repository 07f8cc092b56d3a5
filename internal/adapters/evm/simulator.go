// Package evm is an in-memory execution substrate: it holds the tribute
// token ledgers and the guild-gated collectibles of a world state and routes
// delegated calls to them by target address.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

var (
	// ErrNoContract is returned when a call targets an address with no code
	ErrNoContract = errors.New("no contract at address")

	// ErrReverted is returned when a contract rejects a call
	ErrReverted = errors.New("execution reverted")

	// ErrNonPayable is returned when value is sent to a non-payable function
	ErrNonPayable = errors.New("function is not payable")
)

// Authorizer is the predicate a collectible consults before minting
type Authorizer interface {
	IsAuthorized(addr common.Address) bool
	Minion() common.Address
}

// Contract is code the simulator can dispatch calls to
type Contract interface {
	Call(ctx context.Context, caller common.Address, value *big.Int, data []byte) ([]byte, error)
}

// Simulator executes calls against a world state
type Simulator struct {
	world       *models.WorldState
	authorizers map[common.Address]Authorizer
	contracts   map[common.Address]Contract
}

// NewSimulator attaches a simulator to world
func NewSimulator(world *models.WorldState) *Simulator {
	world.Normalize()
	return &Simulator{
		world:       world,
		authorizers: make(map[common.Address]Authorizer),
		contracts:   make(map[common.Address]Contract),
	}
}

// World returns the attached world state
func (s *Simulator) World() *models.WorldState {
	return s.world
}

// NextAddress returns the CREATE address of deployer's next deployment and
// bumps its nonce
func (s *Simulator) NextAddress(deployer common.Address) common.Address {
	nonce := s.world.Nonces[deployer]
	s.world.Nonces[deployer] = nonce + 1
	return crypto.CreateAddress(deployer, nonce)
}

// BindAuthorizer makes a guild's predicate available to collectibles that
// trust its minion
func (s *Simulator) BindAuthorizer(a Authorizer) {
	s.authorizers[a.Minion()] = a
}

// RegisterContract installs custom code at addr. Custom code is not persisted.
func (s *Simulator) RegisterContract(addr common.Address, c Contract) {
	s.contracts[addr] = c
}

// Call dispatches a call to the contract deployed at target
func (s *Simulator) Call(ctx context.Context, caller, target common.Address, value *big.Int, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if value == nil {
		value = new(big.Int)
	}
	if c, ok := s.contracts[target]; ok {
		return c.Call(ctx, caller, value, data)
	}
	if c, ok := s.world.Collectibles[target]; ok {
		if value.Sign() != 0 {
			return nil, ErrNonPayable
		}
		return s.callCollectible(c, caller, data)
	}
	if t, ok := s.world.Tokens[target]; ok {
		if value.Sign() != 0 {
			return nil, ErrNonPayable
		}
		return s.callToken(t, caller, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoContract, target.Hex())
}
