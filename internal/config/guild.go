package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/config"
)

// loadEnvFiles loads .env and .env.local from the project root. Variables
// already set in the environment win.
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// loadGuildConfig reads guild.toml over the defaults. Returns the defaults
// and an empty path when the file does not exist.
func loadGuildConfig(projectRoot string) (*config.GuildConfig, string, error) {
	cfg := config.DefaultGuildConfig()
	path := filepath.Join(projectRoot, GuildFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, "", nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", GuildFileName, err)
	}

	cfg.ProposalDeposit = os.ExpandEnv(cfg.ProposalDeposit)
	cfg.ProcessingReward = os.ExpandEnv(cfg.ProcessingReward)
	cfg.ApprovedTokens = lo.Map(cfg.ApprovedTokens, func(t string, _ int) string {
		return strings.TrimSpace(os.ExpandEnv(t))
	})
	return cfg, path, nil
}

// Validate checks a resolved runtime configuration
func Validate(cfg *config.RuntimeConfig) error {
	switch cfg.Format {
	case "", "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", cfg.Format)
	}
	switch cfg.Store {
	case "", config.StoreFS, config.StoreLevelDB:
	default:
		return fmt.Errorf("unsupported store backend %q", cfg.Store)
	}
	if cfg.From != "" && !common.IsHexAddress(cfg.From) {
		return fmt.Errorf("default sender %q: %w", cfg.From, domain.ErrInvalidAddress)
	}
	if cfg.Guild != nil {
		if _, err := cfg.Guild.Params(); err != nil {
			return fmt.Errorf("invalid %s: %w", GuildFileName, err)
		}
	}
	return nil
}
