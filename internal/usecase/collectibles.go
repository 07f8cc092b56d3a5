package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// DeployCollectible deploys a MinionNFT trusting a minion
type DeployCollectible struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewDeployCollectible creates a new deploy collectible use case
func NewDeployCollectible(sessions *Sessions, log *slog.Logger) *DeployCollectible {
	return &DeployCollectible{sessions: sessions, log: log}
}

// DeployCollectibleParams contains parameters for deployment
type DeployCollectibleParams struct {
	From   common.Address
	Name   string
	Symbol string
	Minion common.Address // zero means the guild's minion
}

// Run deploys the collectible
func (uc *DeployCollectible) Run(ctx context.Context, params DeployCollectibleParams) (*models.CollectibleState, error) {
	var collectible *models.CollectibleState
	err := uc.sessions.Mutate(ctx, "deploy-collectible", func(s *Session) error {
		minion := params.Minion
		if minion == (common.Address{}) {
			g, err := s.Guild()
			if err != nil {
				return err
			}
			minion = g.Minion.Address()
		}
		addr, err := s.Chain.DeployCollectible(params.From, params.Name, params.Symbol, minion)
		if err != nil {
			return err
		}
		collectible, err = s.Chain.Collectible(addr)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("collectible deployed", "address", collectible.Address.Hex(), "minion", collectible.Minion.Hex())
	return collectible, nil
}

// MintCollectible calls mint on a collectible directly as the caller
type MintCollectible struct {
	sessions *Sessions
	codec    CallCodec
	log      *slog.Logger
}

// NewMintCollectible creates a new mint collectible use case
func NewMintCollectible(sessions *Sessions, codec CallCodec, log *slog.Logger) *MintCollectible {
	return &MintCollectible{sessions: sessions, codec: codec, log: log}
}

// MintCollectibleParams contains parameters for minting
type MintCollectibleParams struct {
	From        common.Address
	Collectible common.Address
	To          common.Address
}

// MintCollectibleResult contains the minted token
type MintCollectibleResult struct {
	Collectible common.Address
	To          common.Address
	TokenID     uint64
	Balance     uint64
}

// Run mints. Callers other than the minion must be members minting to members.
func (uc *MintCollectible) Run(ctx context.Context, params MintCollectibleParams) (*MintCollectibleResult, error) {
	data, err := uc.codec.EncodeMint(params.To)
	if err != nil {
		return nil, err
	}

	result := &MintCollectibleResult{Collectible: params.Collectible, To: params.To}
	err = uc.sessions.Mutate(ctx, "mint", func(s *Session) error {
		c, err := s.Chain.Collectible(params.Collectible)
		if err != nil {
			return err
		}
		ret, err := s.Chain.Call(ctx, params.From, params.Collectible, nil, data)
		if err != nil {
			return fmt.Errorf("mint reverted: %w", err)
		}
		id, err := uc.codec.DecodeTokenID(ret)
		if err != nil {
			return err
		}
		result.TokenID = id.Uint64()
		result.Balance = c.Balances[params.To]
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("collectible minted", "collectible", params.Collectible.Hex(), "to", params.To.Hex(), "tokenId", result.TokenID)
	return result, nil
}

// CollectibleBalance reads a collectible's balance for an owner
type CollectibleBalance struct {
	sessions *Sessions
}

// NewCollectibleBalance creates a new collectible balance use case
func NewCollectibleBalance(sessions *Sessions) *CollectibleBalance {
	return &CollectibleBalance{sessions: sessions}
}

// CollectibleBalanceResult contains an owner's holdings
type CollectibleBalanceResult struct {
	Collectible *models.CollectibleState
	Owner       common.Address
	Balance     uint64
	TokenIDs    []uint64
}

// Run reads the balance and the ids owned
func (uc *CollectibleBalance) Run(ctx context.Context, collectible, owner common.Address) (*CollectibleBalanceResult, error) {
	var result *CollectibleBalanceResult
	err := uc.sessions.View(ctx, func(s *Session) error {
		c, err := s.Chain.Collectible(collectible)
		if err != nil {
			return err
		}
		result = &CollectibleBalanceResult{Collectible: c, Owner: owner, Balance: c.Balances[owner]}
		for id := uint64(0); id < c.NextTokenID; id++ {
			if c.Owners[id] == owner {
				result.TokenIDs = append(result.TokenIDs, id)
			}
		}
		return nil
	})
	return result, err
}
