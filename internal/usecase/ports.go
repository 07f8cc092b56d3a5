package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/governance"
)

// WorldStore handles persistence of the world between invocations.
// Update runs fn as one exclusive load, change, save span and writes
// nothing when fn fails.
type WorldStore interface {
	Load(ctx context.Context) (*models.WorldState, error)
	Update(ctx context.Context, fn func(world *models.WorldState) error) error
	Reset(ctx context.Context) error
}

// Chain is the execution substrate attached to one loaded world
type Chain interface {
	governance.TokenBank
	governance.CallSubstrate

	NextAddress(deployer common.Address) common.Address
	DeployToken(deployer common.Address, name, symbol string, decimals uint8) common.Address
	Token(addr common.Address) (*models.TokenState, error)
	Mint(token, to common.Address, amount *big.Int) error
	Allowance(token, owner, spender common.Address) (*big.Int, error)
	DeployCollectible(deployer common.Address, name, symbol string, minion common.Address) (common.Address, error)
	Collectible(addr common.Address) (*models.CollectibleState, error)

	// BindGuild lets collectibles trusting the guild's minion consult its members
	BindGuild(g *governance.Guild)
}

// TimeMachine is a guild clock that can be moved forward
type TimeMachine interface {
	governance.Clock
	Advance(d time.Duration)
}

// Runtime attaches a chain and a clock to a loaded world
type Runtime interface {
	Attach(world *models.WorldState) (Chain, TimeMachine)
}

// CallCodec encodes and describes delegated call payloads
type CallCodec interface {
	EncodeCall(signature string, args ...string) ([]byte, error)
	EncodeMint(to common.Address) ([]byte, error)
	DecodeTokenID(ret []byte) (*big.Int, error)
	Describe(data []byte) string
}

// ProposalSelector handles interactive selection of proposals
type ProposalSelector interface {
	SelectProposal(ctx context.Context, proposals []ProposalView, prompt string) (*ProposalView, error)
}

// LocalConfigStore handles persistence of per-project defaults
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	GetPath() string
}

// Use case result types

// ProposalView is a proposal together with everything derived from it
type ProposalView struct {
	Proposal models.Proposal
	Status   models.ProposalStatus
	Votes    []models.Vote
	Outcome  governance.Outcome
	Action   *models.DelegatedAction
}

func viewProposal(g *governance.Guild, now time.Time, id uint64) (*ProposalView, error) {
	p, err := g.Ledger.Proposal(id)
	if err != nil {
		return nil, err
	}
	outcome, err := g.Voting.Outcome(id)
	if err != nil {
		return nil, err
	}
	view := &ProposalView{
		Proposal: p,
		Status:   p.StatusAt(now),
		Votes:    g.Ledger.Votes(id),
		Outcome:  outcome,
	}
	if action, err := g.Minion.Action(id); err == nil {
		view.Action = &action
	}
	return view, nil
}
