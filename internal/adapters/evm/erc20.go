package evm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	contractabi "github.com/trebuchet-org/minion/internal/adapters/abi"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// DeployToken creates a new ERC20 ledger owned by nobody
func (s *Simulator) DeployToken(deployer common.Address, name, symbol string, decimals uint8) common.Address {
	addr := s.NextAddress(deployer)
	s.world.Tokens[addr] = &models.TokenState{
		Address:     addr,
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: new(big.Int),
		Balances:    make(map[common.Address]*big.Int),
		Allowances:  make(map[common.Address]map[common.Address]*big.Int),
	}
	return addr
}

// Token returns the state of a deployed token
func (s *Simulator) Token(token common.Address) (*models.TokenState, error) {
	t, ok := s.world.Tokens[token]
	if !ok {
		return nil, fmt.Errorf("%w: token %s", ErrNoContract, token.Hex())
	}
	return t, nil
}

// Mint creates new tokens for a test fixture or faucet
func (s *Simulator) Mint(token, to common.Address, amount *big.Int) error {
	t, err := s.Token(token)
	if err != nil {
		return err
	}
	if amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if to == (common.Address{}) {
		return domain.ErrZeroAddress
	}
	t.TotalSupply.Add(t.TotalSupply, amount)
	t.Balances[to] = new(big.Int).Add(balance(t, to), amount)
	return nil
}

// BalanceOf returns owner's balance of token
func (s *Simulator) BalanceOf(token, owner common.Address) (*big.Int, error) {
	t, err := s.Token(token)
	if err != nil {
		return nil, err
	}
	return balance(t, owner), nil
}

// Allowance returns how much spender may move on behalf of owner
func (s *Simulator) Allowance(token, owner, spender common.Address) (*big.Int, error) {
	t, err := s.Token(token)
	if err != nil {
		return nil, err
	}
	return allowance(t, owner, spender), nil
}

// Approve sets spender's allowance over owner's tokens
func (s *Simulator) Approve(token, owner, spender common.Address, amount *big.Int) error {
	t, err := s.Token(token)
	if err != nil {
		return err
	}
	if amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if spender == (common.Address{}) {
		return domain.ErrZeroAddress
	}
	if t.Allowances[owner] == nil {
		t.Allowances[owner] = make(map[common.Address]*big.Int)
	}
	t.Allowances[owner][spender] = new(big.Int).Set(amount)
	return nil
}

// Transfer moves tokens from one account to another
func (s *Simulator) Transfer(token, from, to common.Address, amount *big.Int) error {
	t, err := s.Token(token)
	if err != nil {
		return err
	}
	return move(t, from, to, amount)
}

// TransferFrom moves tokens using spender's allowance over from
func (s *Simulator) TransferFrom(token, spender, from, to common.Address, amount *big.Int) error {
	t, err := s.Token(token)
	if err != nil {
		return err
	}
	allowed := allowance(t, from, spender)
	if allowed.Cmp(amount) < 0 {
		return fmt.Errorf("%w: ERC20: insufficient allowance (%s < %s)", ErrReverted, allowed, amount)
	}
	if err := move(t, from, to, amount); err != nil {
		return err
	}
	t.Allowances[from][spender] = new(big.Int).Sub(allowed, amount)
	return nil
}

func (s *Simulator) callToken(t *models.TokenState, caller common.Address, data []byte) ([]byte, error) {
	method, args, err := contractabi.DecodeCall(contractabi.ERC20, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReverted, err)
	}

	switch method.Name {
	case "balanceOf":
		return method.Outputs.Pack(balance(t, args[0].(common.Address)))
	case "allowance":
		return method.Outputs.Pack(allowance(t, args[0].(common.Address), args[1].(common.Address)))
	case "totalSupply":
		return method.Outputs.Pack(new(big.Int).Set(t.TotalSupply))
	case "transfer":
		if err := move(t, caller, args[0].(common.Address), args[1].(*big.Int)); err != nil {
			return nil, err
		}
	case "approve":
		if err := s.Approve(t.Address, caller, args[0].(common.Address), args[1].(*big.Int)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReverted, err)
		}
	case "transferFrom":
		if err := s.TransferFrom(t.Address, caller, args[0].(common.Address), args[1].(common.Address), args[2].(*big.Int)); err != nil {
			return nil, err
		}
	}
	return method.Outputs.Pack(true)
}

func move(t *models.TokenState, from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if to == (common.Address{}) {
		return fmt.Errorf("%w: ERC20: transfer to the zero address", ErrReverted)
	}
	held := balance(t, from)
	if held.Cmp(amount) < 0 {
		return fmt.Errorf("%w: ERC20: transfer amount exceeds balance (%s < %s)", ErrReverted, held, amount)
	}
	t.Balances[from] = new(big.Int).Sub(held, amount)
	t.Balances[to] = new(big.Int).Add(balance(t, to), amount)
	return nil
}

func balance(t *models.TokenState, owner common.Address) *big.Int {
	if b, ok := t.Balances[owner]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func allowance(t *models.TokenState, owner, spender common.Address) *big.Int {
	if a, ok := t.Allowances[owner][spender]; ok {
		return new(big.Int).Set(a)
	}
	return new(big.Int)
}
