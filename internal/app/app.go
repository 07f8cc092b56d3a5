package app

import (
	"log/slog"

	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Codec usecase.CallCodec

	// Guild lifecycle
	SummonGuild *usecase.SummonGuild
	ListMembers *usecase.ListMembers
	Ragequit    *usecase.Ragequit
	ResetWorld  *usecase.ResetWorld

	// Proposals
	SubmitProposal  *usecase.SubmitProposal
	SponsorProposal *usecase.SponsorProposal
	SubmitVote      *usecase.SubmitVote
	ProcessProposal *usecase.ProcessProposal
	CancelProposal  *usecase.CancelProposal
	ShowProposal    *usecase.ShowProposal
	ListProposals   *usecase.ListProposals

	// Minion
	ProposeAction *usecase.ProposeAction
	ExecuteAction *usecase.ExecuteAction
	ListActions   *usecase.ListActions

	// Tokens and collectibles
	FundAccount        *usecase.FundAccount
	ApproveToken       *usecase.ApproveToken
	TokenBalance       *usecase.TokenBalance
	DeployCollectible  *usecase.DeployCollectible
	MintCollectible    *usecase.MintCollectible
	CollectibleBalance *usecase.CollectibleBalance

	// Clock
	AdvanceTime *usecase.AdvanceTime
	CurrentTime *usecase.CurrentTime

	// Local config
	ShowConfig   *usecase.ShowConfig
	SetConfig    *usecase.SetConfig
	RemoveConfig *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	codec usecase.CallCodec,
	summonGuild *usecase.SummonGuild,
	listMembers *usecase.ListMembers,
	ragequit *usecase.Ragequit,
	resetWorld *usecase.ResetWorld,
	submitProposal *usecase.SubmitProposal,
	sponsorProposal *usecase.SponsorProposal,
	submitVote *usecase.SubmitVote,
	processProposal *usecase.ProcessProposal,
	cancelProposal *usecase.CancelProposal,
	showProposal *usecase.ShowProposal,
	listProposals *usecase.ListProposals,
	proposeAction *usecase.ProposeAction,
	executeAction *usecase.ExecuteAction,
	listActions *usecase.ListActions,
	fundAccount *usecase.FundAccount,
	approveToken *usecase.ApproveToken,
	tokenBalance *usecase.TokenBalance,
	deployCollectible *usecase.DeployCollectible,
	mintCollectible *usecase.MintCollectible,
	collectibleBalance *usecase.CollectibleBalance,
	advanceTime *usecase.AdvanceTime,
	currentTime *usecase.CurrentTime,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:             cfg,
		Log:                log,
		Codec:              codec,
		SummonGuild:        summonGuild,
		ListMembers:        listMembers,
		Ragequit:           ragequit,
		ResetWorld:         resetWorld,
		SubmitProposal:     submitProposal,
		SponsorProposal:    sponsorProposal,
		SubmitVote:         submitVote,
		ProcessProposal:    processProposal,
		CancelProposal:     cancelProposal,
		ShowProposal:       showProposal,
		ListProposals:      listProposals,
		ProposeAction:      proposeAction,
		ExecuteAction:      executeAction,
		ListActions:        listActions,
		FundAccount:        fundAccount,
		ApproveToken:       approveToken,
		TokenBalance:       tokenBalance,
		DeployCollectible:  deployCollectible,
		MintCollectible:    mintCollectible,
		CollectibleBalance: collectibleBalance,
		AdvanceTime:        advanceTime,
		CurrentTime:        currentTime,
		ShowConfig:         showConfig,
		SetConfig:          setConfig,
		RemoveConfig:       removeConfig,
	}, nil
}
