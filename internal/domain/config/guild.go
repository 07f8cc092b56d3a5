package config

import (
	"math"
	"math/big"
	"math/bits"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// GuildConfig is the guild.toml file: the governance constants a guild is
// summoned with. Periods are counted in period_duration seconds.
type GuildConfig struct {
	PeriodDuration     uint64   `toml:"period_duration"`
	VotingPeriodLength uint64   `toml:"voting_period_length"`
	GracePeriodLength  uint64   `toml:"grace_period_length"`
	QuorumPercentage   uint32   `toml:"quorum_percentage"`
	DilutionBound      uint64   `toml:"dilution_bound"`
	ProposalDeposit    string   `toml:"proposal_deposit"`
	ProcessingReward   string   `toml:"processing_reward"`
	ApprovedTokens     []string `toml:"approved_tokens"`
	SummonerShares     uint64   `toml:"summoner_shares"`

	// Token describes the tribute token deployed at summoning when no
	// approved tokens are listed
	Token TokenConfig `toml:"token"`
}

// TokenConfig describes a tribute token
type TokenConfig struct {
	Name     string `toml:"name"`
	Symbol   string `toml:"symbol"`
	Decimals uint8  `toml:"decimals"`
}

// DefaultGuildConfig mirrors the constants of the reference Moloch deployment
func DefaultGuildConfig() *GuildConfig {
	return &GuildConfig{
		PeriodDuration:     60,
		VotingPeriodLength: 10,
		GracePeriodLength:  10,
		QuorumPercentage:   0,
		DilutionBound:      3,
		ProposalDeposit:    "10",
		ProcessingReward:   "1",
		SummonerShares:     1,
		Token: TokenConfig{
			Name:     "Guild Token",
			Symbol:   "GLD",
			Decimals: 18,
		},
	}
}

// Params converts the file into governance parameters. Approved tokens may
// be empty; summoning deploys a tribute token in that case.
func (cfg *GuildConfig) Params() (models.GuildParams, error) {
	var params models.GuildParams

	if cfg.PeriodDuration == 0 || cfg.VotingPeriodLength == 0 {
		return params, domain.Errorf(domain.ErrInvalidInput, "voting period must be positive")
	}
	if cfg.DilutionBound == 0 {
		return params, domain.Errorf(domain.ErrInvalidInput, "dilution bound must be positive")
	}
	if cfg.QuorumPercentage > 100 {
		return params, domain.Errorf(domain.ErrInvalidInput, "quorum percentage %d exceeds 100", cfg.QuorumPercentage)
	}
	if cfg.SummonerShares == 0 {
		return params, domain.Errorf(domain.ErrInvalidInput, "summoner needs at least one share")
	}

	deposit, err := parseAmount("proposal_deposit", cfg.ProposalDeposit)
	if err != nil {
		return params, err
	}
	reward, err := parseAmount("processing_reward", cfg.ProcessingReward)
	if err != nil {
		return params, err
	}
	if reward.Cmp(deposit) > 0 {
		return params, domain.Errorf(domain.ErrInvalidInput, "processing reward exceeds proposal deposit")
	}

	tokens := make([]common.Address, 0, len(cfg.ApprovedTokens))
	for _, t := range cfg.ApprovedTokens {
		if !common.IsHexAddress(t) {
			return params, domain.Errorf(domain.ErrInvalidAddress, "approved token %q", t)
		}
		tokens = append(tokens, common.HexToAddress(t))
	}
	if dup := lo.FindDuplicates(tokens); len(dup) > 0 {
		return params, domain.Errorf(domain.ErrInvalidInput, "duplicate approved token %s", dup[0].Hex())
	}

	voting, err := periodLength("voting_period_length", cfg.VotingPeriodLength, cfg.PeriodDuration)
	if err != nil {
		return params, err
	}
	grace, err := periodLength("grace_period_length", cfg.GracePeriodLength, cfg.PeriodDuration)
	if err != nil {
		return params, err
	}

	params = models.GuildParams{
		VotingPeriod:     voting,
		GracePeriod:      grace,
		QuorumPercentage: cfg.QuorumPercentage,
		DilutionBound:    cfg.DilutionBound,
		ProposalDeposit:  deposit,
		ProcessingReward: reward,
		ApprovedTokens:   tokens,
	}
	return params, nil
}

// maxPeriodSeconds is the longest span a time.Duration can hold
const maxPeriodSeconds = uint64(math.MaxInt64 / int64(time.Second))

// periodLength converts a count of periods into a duration, rejecting
// products that do not fit
func periodLength(field string, periods, periodSeconds uint64) (time.Duration, error) {
	hi, secs := bits.Mul64(periods, periodSeconds)
	if hi != 0 || secs > maxPeriodSeconds {
		return 0, domain.Errorf(domain.ErrInvalidInput, "%s of %d periods of %ds is too long", field, periods, periodSeconds)
	}
	return time.Duration(secs) * time.Second, nil
}

func parseAmount(field, raw string) (*big.Int, error) {
	if raw == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		return nil, domain.Errorf(domain.ErrInvalidAmount, "%s %q", field, raw)
	}
	return v, nil
}
