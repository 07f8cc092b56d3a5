package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// TokenBalanceResult describes an account's position in one token
type TokenBalanceResult struct {
	Token          *models.TokenState
	Account        common.Address
	Balance        *big.Int
	GuildAllowance *big.Int
	GuildBank      *big.Int
}

// resolveToken defaults the zero address to the guild's deposit token
func resolveToken(s *Session, token common.Address) (common.Address, error) {
	if token != (common.Address{}) {
		return token, nil
	}
	g, err := s.Guild()
	if err != nil {
		return common.Address{}, domain.Errorf(domain.ErrInvalidToken, "no token given and no guild summoned")
	}
	return g.Ledger.Params().DepositToken(), nil
}

func tokenBalance(s *Session, token, account common.Address) (*TokenBalanceResult, error) {
	state, err := s.Chain.Token(token)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidToken, "%v", err)
	}
	balance, err := s.Chain.BalanceOf(token, account)
	if err != nil {
		return nil, err
	}
	result := &TokenBalanceResult{
		Token:          state,
		Account:        account,
		Balance:        balance,
		GuildAllowance: new(big.Int),
		GuildBank:      new(big.Int),
	}
	if g, err := s.Guild(); err == nil {
		if result.GuildAllowance, err = s.Chain.Allowance(token, account, g.State().Address); err != nil {
			return nil, err
		}
		result.GuildBank = g.Ledger.BankBalance(token)
	}
	return result, nil
}

// FundAccount mints tribute tokens to an account, a faucet for local worlds
type FundAccount struct {
	sessions *Sessions
}

// NewFundAccount creates a new fund account use case
func NewFundAccount(sessions *Sessions) *FundAccount {
	return &FundAccount{sessions: sessions}
}

// FundAccountParams contains parameters for funding
type FundAccountParams struct {
	Token   common.Address
	Account common.Address
	Amount  *big.Int
}

// Run mints Amount of Token to Account
func (uc *FundAccount) Run(ctx context.Context, params FundAccountParams) (*TokenBalanceResult, error) {
	if params.Amount == nil || params.Amount.Sign() <= 0 {
		return nil, domain.Errorf(domain.ErrInvalidAmount, "amount must be positive")
	}
	var result *TokenBalanceResult
	err := uc.sessions.Mutate(ctx, "fund", func(s *Session) error {
		token, err := resolveToken(s, params.Token)
		if err != nil {
			return err
		}
		if err := s.Chain.Mint(token, params.Account, params.Amount); err != nil {
			return err
		}
		result, err = tokenBalance(s, token, params.Account)
		return err
	})
	return result, err
}

// ApproveToken sets an allowance, by default for the guild to pull tribute
type ApproveToken struct {
	sessions *Sessions
}

// NewApproveToken creates a new approve token use case
func NewApproveToken(sessions *Sessions) *ApproveToken {
	return &ApproveToken{sessions: sessions}
}

// ApproveTokenParams contains parameters for approving
type ApproveTokenParams struct {
	Token   common.Address
	Owner   common.Address
	Spender common.Address // zero means the guild
	Amount  *big.Int
}

// Run sets the allowance of Spender over Owner's tokens
func (uc *ApproveToken) Run(ctx context.Context, params ApproveTokenParams) (*TokenBalanceResult, error) {
	if params.Amount == nil || params.Amount.Sign() < 0 {
		return nil, domain.Errorf(domain.ErrInvalidAmount, "amount cannot be negative")
	}
	var result *TokenBalanceResult
	err := uc.sessions.Mutate(ctx, "approve", func(s *Session) error {
		token, err := resolveToken(s, params.Token)
		if err != nil {
			return err
		}
		spender := params.Spender
		if spender == (common.Address{}) {
			g, err := s.Guild()
			if err != nil {
				return err
			}
			spender = g.State().Address
		}
		if err := s.Chain.Approve(token, params.Owner, spender, params.Amount); err != nil {
			return err
		}
		result, err = tokenBalance(s, token, params.Owner)
		return err
	})
	return result, err
}

// TokenBalance reports balances and guild allowance of an account
type TokenBalance struct {
	sessions *Sessions
}

// NewTokenBalance creates a new token balance use case
func NewTokenBalance(sessions *Sessions) *TokenBalance {
	return &TokenBalance{sessions: sessions}
}

// TokenBalanceParams contains parameters for a balance query
type TokenBalanceParams struct {
	Token   common.Address
	Account common.Address
}

// Run reads the balance
func (uc *TokenBalance) Run(ctx context.Context, params TokenBalanceParams) (*TokenBalanceResult, error) {
	var result *TokenBalanceResult
	err := uc.sessions.View(ctx, func(s *Session) error {
		token, err := resolveToken(s, params.Token)
		if err != nil {
			return err
		}
		result, err = tokenBalance(s, token, params.Account)
		return err
	})
	return result, err
}
