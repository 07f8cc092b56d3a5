package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store LocalConfigStore
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore) *SetConfig {
	return &SetConfig{
		store: store,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := parseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}
	value, err := normalizeConfigValue(key, params.Value)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Set(key, value)

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         value,
	}, nil
}

func parseConfigKey(raw string) (config.ConfigKey, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if !config.IsValidConfigKey(key) {
		valid := make([]string, 0, len(config.ValidConfigKeys()))
		for _, k := range config.ValidConfigKeys() {
			valid = append(valid, string(k))
		}
		return "", domain.Errorf(domain.ErrInvalidInput, "unknown config key %q, available keys: %s", raw, strings.Join(valid, ", "))
	}
	return config.ConfigKey(key), nil
}

// normalizeConfigValue checks value against what the key accepts
func normalizeConfigValue(key config.ConfigKey, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch key {
	case config.ConfigKeyFrom:
		if !common.IsHexAddress(value) {
			return "", domain.Errorf(domain.ErrInvalidAddress, "%q", value)
		}
		addr := common.HexToAddress(value)
		if addr == (common.Address{}) {
			return "", domain.ErrZeroAddress
		}
		return addr.Hex(), nil
	case config.ConfigKeyStore:
		value = strings.ToLower(value)
		switch config.StoreBackend(value) {
		case config.StoreFS, config.StoreLevelDB:
			return value, nil
		}
		return "", domain.Errorf(domain.ErrInvalidInput, "store must be %s or %s", config.StoreFS, config.StoreLevelDB)
	case config.ConfigKeyFormat:
		value = strings.ToLower(value)
		switch value {
		case "table", "json", "yaml":
			return value, nil
		}
		return "", domain.Errorf(domain.ErrInvalidInput, "format must be table, json or yaml")
	}
	return value, nil
}
