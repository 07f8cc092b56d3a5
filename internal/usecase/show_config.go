package usecase

import (
	"context"

	"github.com/trebuchet-org/minion/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool

	// Effective values after flags and environment are applied
	EffectiveFrom   string
	EffectiveStore  string
	EffectiveFormat string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	store   LocalConfigStore
	runtime *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(store LocalConfigStore, runtime *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{
		store:   store,
		runtime: runtime,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:          cfg,
		ConfigPath:      uc.store.GetPath(),
		Exists:          exists,
		EffectiveFrom:   uc.runtime.From,
		EffectiveStore:  string(uc.runtime.Store),
		EffectiveFormat: uc.runtime.Format,
	}, nil
}
