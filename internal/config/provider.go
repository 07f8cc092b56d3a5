package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/minion/internal/domain/config"
)

const (
	// DataDirName is the per-project directory holding world state and local config
	DataDirName = ".minion"

	// GuildFileName is the governance constants file at the project root
	GuildFileName = "guild.toml"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Format:         strings.ToLower(v.GetString("format")),
		Timeout:        v.GetDuration("timeout"),
		From:           os.ExpandEnv(v.GetString("from")),
		Store:          config.StoreBackend(strings.ToLower(v.GetString("store"))),
	}
	if cfg.JSON {
		cfg.Format = "json"
	}

	guild, path, err := loadGuildConfig(projectRoot)
	if err != nil {
		return nil, err
	}
	cfg.Guild = guild
	cfg.GuildFile = path

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the nearest
// guild.toml or .minion directory, falling back to the current directory
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range []string{GuildFileName, DataDirName} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	v.SetEnvPrefix("MINION")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "1m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("format", "table")
	v.SetDefault("store", string(config.StoreFS))
	v.SetDefault("project_root", projectRoot)

	// Missing config file is fine
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}
