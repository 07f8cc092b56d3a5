//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/minion/internal/adapters"
	"github.com/trebuchet-org/minion/internal/config"
	"github.com/trebuchet-org/minion/internal/logging"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewSessions,
		usecase.NewSummonGuild,
		usecase.NewListMembers,
		usecase.NewRagequit,
		usecase.NewResetWorld,
		usecase.NewSubmitProposal,
		usecase.NewSponsorProposal,
		usecase.NewSubmitVote,
		usecase.NewProcessProposal,
		usecase.NewCancelProposal,
		usecase.NewShowProposal,
		usecase.NewListProposals,
		usecase.NewProposeAction,
		usecase.NewExecuteAction,
		usecase.NewListActions,
		usecase.NewFundAccount,
		usecase.NewApproveToken,
		usecase.NewTokenBalance,
		usecase.NewDeployCollectible,
		usecase.NewMintCollectible,
		usecase.NewCollectibleBalance,
		usecase.NewAdvanceTime,
		usecase.NewCurrentTime,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
