package evm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	contractabi "github.com/trebuchet-org/minion/internal/adapters/abi"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// DeployCollectible creates a MinionNFT trusting the given minion
func (s *Simulator) DeployCollectible(deployer common.Address, name, symbol string, minion common.Address) (common.Address, error) {
	if minion == (common.Address{}) {
		return common.Address{}, domain.Errorf(domain.ErrZeroAddress, "minion")
	}
	addr := s.NextAddress(deployer)
	s.world.Collectibles[addr] = &models.CollectibleState{
		Address:  addr,
		Name:     name,
		Symbol:   symbol,
		Minion:   minion,
		Owners:   make(map[uint64]common.Address),
		Balances: make(map[common.Address]uint64),
	}
	return addr, nil
}

// Collectible returns the state of a deployed collectible
func (s *Simulator) Collectible(addr common.Address) (*models.CollectibleState, error) {
	c, ok := s.world.Collectibles[addr]
	if !ok {
		return nil, fmt.Errorf("%w: collectible %s", ErrNoContract, addr.Hex())
	}
	return c, nil
}

// canMint applies the minion-or-member gate. A member calling directly may
// only mint to members; anything else has to come through the minion.
func (s *Simulator) canMint(c *models.CollectibleState, caller, to common.Address) bool {
	if caller == c.Minion {
		return true
	}
	auth, ok := s.authorizers[c.Minion]
	if !ok {
		return false
	}
	return auth.IsAuthorized(caller) && auth.IsAuthorized(to)
}

func (s *Simulator) mint(c *models.CollectibleState, caller, to common.Address) (uint64, error) {
	if !s.canMint(c, caller, to) {
		return 0, fmt.Errorf("%w: MinionOwnable: %w", ErrReverted, domain.ErrNotAuthorized)
	}
	if to == (common.Address{}) {
		return 0, fmt.Errorf("%w: ERC721: mint to the zero address", ErrReverted)
	}
	id := c.NextTokenID
	c.NextTokenID++
	c.Owners[id] = to
	c.Balances[to]++
	return id, nil
}

func (s *Simulator) callCollectible(c *models.CollectibleState, caller common.Address, data []byte) ([]byte, error) {
	method, args, err := contractabi.DecodeCall(contractabi.MinionNFT, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReverted, err)
	}

	switch method.Name {
	case "mint":
		id, err := s.mint(c, caller, args[0].(common.Address))
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(new(big.Int).SetUint64(id))
	case "balanceOf":
		return method.Outputs.Pack(new(big.Int).SetUint64(c.Balances[args[0].(common.Address)]))
	case "ownerOf":
		id := args[0].(*big.Int)
		owner, ok := c.Owners[id.Uint64()]
		if !id.IsUint64() || !ok {
			return nil, fmt.Errorf("%w: ERC721: invalid token ID", ErrReverted)
		}
		return method.Outputs.Pack(owner)
	case "totalSupply":
		return method.Outputs.Pack(new(big.Int).SetUint64(c.NextTokenID))
	case "minion":
		return method.Outputs.Pack(c.Minion)
	case "name":
		return method.Outputs.Pack(c.Name)
	case "symbol":
		return method.Outputs.Pack(c.Symbol)
	}
	return nil, fmt.Errorf("%w: unknown method %s", ErrReverted, method.Name)
}
