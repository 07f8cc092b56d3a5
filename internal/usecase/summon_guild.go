package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/governance"
)

// SummonGuild creates the guild, its minion and, when no tokens are
// whitelisted, a tribute token
type SummonGuild struct {
	sessions *Sessions
	cfg      *config.RuntimeConfig
	log      *slog.Logger
}

// NewSummonGuild creates a new summon guild use case
func NewSummonGuild(sessions *Sessions, cfg *config.RuntimeConfig, log *slog.Logger) *SummonGuild {
	return &SummonGuild{sessions: sessions, cfg: cfg, log: log}
}

// SummonGuildParams contains parameters for summoning
type SummonGuildParams struct {
	Summoner common.Address
}

// SummonGuildResult contains the result of summoning
type SummonGuildResult struct {
	Guild          common.Address
	Minion         common.Address
	Summoner       common.Address
	SummonerShares uint64
	Params         models.GuildParams
	DeployedToken  *models.TokenState
}

// Run summons the guild described by guild.toml
func (uc *SummonGuild) Run(ctx context.Context, params SummonGuildParams) (*SummonGuildResult, error) {
	if params.Summoner == (common.Address{}) {
		return nil, domain.Errorf(domain.ErrZeroAddress, "summoner")
	}
	guildCfg := uc.cfg.Guild
	if guildCfg == nil {
		guildCfg = config.DefaultGuildConfig()
	}
	guildParams, err := guildCfg.Params()
	if err != nil {
		return nil, err
	}

	result := &SummonGuildResult{Summoner: params.Summoner, SummonerShares: guildCfg.SummonerShares}
	err = uc.sessions.Mutate(ctx, "summon", func(s *Session) error {
		if s.World.Guild != nil {
			return domain.Errorf(domain.ErrAlreadySummoned, "guild at %s", s.World.Guild.Address.Hex())
		}

		if len(guildParams.ApprovedTokens) == 0 {
			token := s.Chain.DeployToken(params.Summoner, guildCfg.Token.Name, guildCfg.Token.Symbol, guildCfg.Token.Decimals)
			guildParams.ApprovedTokens = []common.Address{token}
			result.DeployedToken, _ = s.Chain.Token(token)
		}
		for _, token := range guildParams.ApprovedTokens {
			if _, err := s.Chain.Token(token); err != nil {
				return domain.Errorf(domain.ErrInvalidToken, "%s is not a deployed token", token.Hex())
			}
		}
		if err := governance.ValidateParams(guildParams); err != nil {
			return err
		}

		guildAddr := s.Chain.NextAddress(params.Summoner)
		minionAddr := s.Chain.NextAddress(guildAddr)
		now := s.Clock.Now()

		s.World.Guild = models.NewGuildState(guildAddr, minionAddr, params.Summoner, guildParams, now)
		s.attachGuild()
		if err := s.guild.Members.Admit(params.Summoner, guildCfg.SummonerShares, 0, now); err != nil {
			return fmt.Errorf("failed to admit summoner: %w", err)
		}

		result.Guild = guildAddr
		result.Minion = minionAddr
		result.Params = guildParams
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("guild summoned", "guild", result.Guild.Hex(), "minion", result.Minion.Hex(), "summoner", params.Summoner.Hex())
	return result, nil
}
