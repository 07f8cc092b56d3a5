package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TokenState is the ledger of one ERC20 tribute token
type TokenState struct {
	Address     common.Address                                 `json:"address"`
	Name        string                                         `json:"name"`
	Symbol      string                                         `json:"symbol"`
	Decimals    uint8                                          `json:"decimals"`
	TotalSupply *big.Int                                       `json:"totalSupply"`
	Balances    map[common.Address]*big.Int                    `json:"balances"`
	Allowances  map[common.Address]map[common.Address]*big.Int `json:"allowances"`
}

// CollectibleState is the state of one minion-gated NFT contract
type CollectibleState struct {
	Address     common.Address            `json:"address"`
	Name        string                    `json:"name"`
	Symbol      string                    `json:"symbol"`
	Minion      common.Address            `json:"minion"`
	NextTokenID uint64                    `json:"nextTokenId"`
	Owners      map[uint64]common.Address `json:"owners"`
	Balances    map[common.Address]uint64 `json:"balances"`
}

// WorldState is everything the execution substrate persists between calls
type WorldState struct {
	Guild        *GuildState                          `json:"guild,omitempty"`
	Tokens       map[common.Address]*TokenState       `json:"tokens"`
	Collectibles map[common.Address]*CollectibleState `json:"collectibles"`
	Nonces       map[common.Address]uint64            `json:"nonces"`

	// ClockOffset is added to wall-clock time, advanced by time travel
	ClockOffset time.Duration `json:"clockOffset"`
}

// NewWorldState returns an empty world
func NewWorldState() *WorldState {
	w := &WorldState{}
	w.Normalize()
	return w
}

// Normalize fills maps left nil by decoding
func (w *WorldState) Normalize() {
	if w.Tokens == nil {
		w.Tokens = make(map[common.Address]*TokenState)
	}
	if w.Collectibles == nil {
		w.Collectibles = make(map[common.Address]*CollectibleState)
	}
	if w.Nonces == nil {
		w.Nonces = make(map[common.Address]uint64)
	}
	for _, t := range w.Tokens {
		if t.Balances == nil {
			t.Balances = make(map[common.Address]*big.Int)
		}
		if t.Allowances == nil {
			t.Allowances = make(map[common.Address]map[common.Address]*big.Int)
		}
		if t.TotalSupply == nil {
			t.TotalSupply = new(big.Int)
		}
	}
	for _, c := range w.Collectibles {
		if c.Owners == nil {
			c.Owners = make(map[uint64]common.Address)
		}
		if c.Balances == nil {
			c.Balances = make(map[common.Address]uint64)
		}
	}
	if w.Guild != nil {
		w.Guild.Normalize()
	}
}
