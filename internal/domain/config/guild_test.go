package config

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/domain"
)

func TestGuildConfig_Params(t *testing.T) {
	t.Run("converts periods and amounts", func(t *testing.T) {
		cfg := DefaultGuildConfig()
		cfg.ApprovedTokens = []string{"0x5FbDB2315678afecb367f032d93F642f64180aa3"}

		params, err := cfg.Params()
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, params.VotingPeriod)
		assert.Equal(t, 10*time.Minute, params.GracePeriod)
		assert.Equal(t, uint64(3), params.DilutionBound)
		assert.Equal(t, big.NewInt(10), params.ProposalDeposit)
		assert.Equal(t, big.NewInt(1), params.ProcessingReward)
		assert.Equal(t, []common.Address{common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")}, params.ApprovedTokens)
	})

	t.Run("longest representable period", func(t *testing.T) {
		cfg := DefaultGuildConfig()
		cfg.PeriodDuration = 1
		cfg.VotingPeriodLength = maxPeriodSeconds

		params, err := cfg.Params()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(maxPeriodSeconds)*time.Second, params.VotingPeriod)
		assert.Positive(t, params.VotingPeriod)
	})

	tests := []struct {
		name  string
		tweak func(*GuildConfig)
		err   error
	}{
		{name: "zero voting period", tweak: func(c *GuildConfig) { c.VotingPeriodLength = 0 }, err: domain.ErrInvalidInput},
		{name: "zero period duration", tweak: func(c *GuildConfig) { c.PeriodDuration = 0 }, err: domain.ErrInvalidInput},
		{name: "voting period overflows uint64", tweak: func(c *GuildConfig) { c.VotingPeriodLength = math.MaxUint64 }, err: domain.ErrInvalidInput},
		{
			name: "voting period too long for a duration",
			tweak: func(c *GuildConfig) {
				c.PeriodDuration = 60
				c.VotingPeriodLength = maxPeriodSeconds/60 + 1
			},
			err: domain.ErrInvalidInput,
		},
		{name: "grace period too long for a duration", tweak: func(c *GuildConfig) { c.PeriodDuration, c.GracePeriodLength = 1, maxPeriodSeconds+1 }, err: domain.ErrInvalidInput},
		{name: "zero dilution bound", tweak: func(c *GuildConfig) { c.DilutionBound = 0 }, err: domain.ErrInvalidInput},
		{name: "quorum above 100", tweak: func(c *GuildConfig) { c.QuorumPercentage = 101 }, err: domain.ErrInvalidInput},
		{name: "no summoner shares", tweak: func(c *GuildConfig) { c.SummonerShares = 0 }, err: domain.ErrInvalidInput},
		{name: "reward above deposit", tweak: func(c *GuildConfig) { c.ProcessingReward = "11" }, err: domain.ErrInvalidInput},
		{name: "negative deposit", tweak: func(c *GuildConfig) { c.ProposalDeposit = "-1" }, err: domain.ErrInvalidAmount},
		{name: "hex deposit", tweak: func(c *GuildConfig) { c.ProposalDeposit = "0x10" }, err: domain.ErrInvalidAmount},
		{name: "bad token", tweak: func(c *GuildConfig) { c.ApprovedTokens = []string{"weth"} }, err: domain.ErrInvalidAddress},
		{
			name: "duplicate token",
			tweak: func(c *GuildConfig) {
				c.ApprovedTokens = []string{
					"0x5FbDB2315678afecb367f032d93F642f64180aa3",
					"0x5fbdb2315678afecb367f032d93f642f64180aa3",
				}
			},
			err: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGuildConfig()
			tt.tweak(cfg)
			_, err := cfg.Params()
			require.ErrorIs(t, err, tt.err)
		})
	}
}
