package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/adapters/abi"
	"github.com/trebuchet-org/minion/internal/adapters/clock"
	"github.com/trebuchet-org/minion/internal/adapters/fs"
	"github.com/trebuchet-org/minion/internal/adapters/substrate"
	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

var (
	summoner = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	dave     = common.HexToAddress("0x5000000000000000000000000000000000000005")

	genesis = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// MockWorldStore is a mock implementation of WorldStore
type MockWorldStore struct {
	mock.Mock
}

func (m *MockWorldStore) Load(ctx context.Context) (*models.WorldState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorldState), args.Error(1)
}

func (m *MockWorldStore) Save(ctx context.Context, world *models.WorldState) error {
	args := m.Called(ctx, world)
	return args.Error(0)
}

// Update runs fn between the mocked Load and Save
func (m *MockWorldStore) Update(ctx context.Context, fn func(*models.WorldState) error) error {
	world, err := m.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(world); err != nil {
		return err
	}
	return m.Save(ctx, world)
}

func (m *MockWorldStore) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// harness wires the use cases over a file-backed world and a manual clock
type harness struct {
	t        *testing.T
	ctx      context.Context
	cfg      *config.RuntimeConfig
	clock    *clock.Manual
	sessions *usecase.Sessions
	codec    *abi.CallCodecAdapter
	log      *slog.Logger
	token    common.Address
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.RuntimeConfig{
		DataDir:        t.TempDir(),
		NonInteractive: true,
		Guild:          config.DefaultGuildConfig(),
	}
	clk := clock.NewManual(genesis)
	log := discardLogger()
	return &harness{
		t:        t,
		ctx:      context.Background(),
		cfg:      cfg,
		clock:    clk,
		sessions: usecase.NewSessions(fs.NewWorldStoreAdapter(cfg), substrate.NewSimulatedAdapterWithClock(clk), log),
		codec:    abi.NewCallCodecAdapter(),
		log:      log,
	}
}

// summon creates the guild and funds the summoner for deposits
func (h *harness) summon() *usecase.SummonGuildResult {
	h.t.Helper()
	result, err := usecase.NewSummonGuild(h.sessions, h.cfg, h.log).Run(h.ctx, usecase.SummonGuildParams{Summoner: summoner})
	require.NoError(h.t, err)
	h.token = result.Params.DepositToken()
	h.fund(summoner, 1000)
	return result
}

func (h *harness) fund(account common.Address, amount int64) {
	h.t.Helper()
	_, err := usecase.NewFundAccount(h.sessions).Run(h.ctx, usecase.FundAccountParams{Account: account, Amount: big.NewInt(amount)})
	require.NoError(h.t, err)
	_, err = usecase.NewApproveToken(h.sessions).Run(h.ctx, usecase.ApproveTokenParams{Owner: account, Amount: big.NewInt(amount)})
	require.NoError(h.t, err)
}

// pass sponsors id, votes yes with every voter and processes it
func (h *harness) pass(id uint64, voters ...common.Address) *usecase.ProcessProposalResult {
	h.t.Helper()
	_, err := usecase.NewSponsorProposal(h.sessions, h.log).Run(h.ctx, usecase.SponsorProposalParams{From: summoner, ProposalID: id})
	require.NoError(h.t, err)
	for _, voter := range voters {
		_, err := usecase.NewSubmitVote(h.sessions, h.log).Run(h.ctx, usecase.SubmitVoteParams{From: voter, ProposalID: id, Choice: models.VoteYes})
		require.NoError(h.t, err)
	}
	_, err = usecase.NewAdvanceTime(h.sessions, h.log).Run(h.ctx, usecase.AdvanceTimeParams{ToProposal: &id})
	require.NoError(h.t, err)
	result, err := usecase.NewProcessProposal(h.sessions, h.log).Run(h.ctx, usecase.ProcessProposalParams{From: summoner, ProposalID: id})
	require.NoError(h.t, err)
	return result
}

// join admits alice with 5 shares for 100 tribute
func (h *harness) join() {
	h.t.Helper()
	h.fund(alice, 1000)
	view, err := usecase.NewSubmitProposal(h.sessions, h.log).Run(h.ctx, usecase.SubmitProposalParams{
		From:            alice,
		Applicant:       alice,
		SharesRequested: 5,
		TributeOffered:  big.NewInt(100),
		Description:     "alice joins",
	})
	require.NoError(h.t, err)
	result := h.pass(view.Proposal.ID, summoner)
	require.True(h.t, result.Outcome.Passed, result.Outcome.Reason)
}

var configDefaults = config.RuntimeConfig{Guild: config.DefaultGuildConfig()}

func newFileStore(t *testing.T) *fs.WorldStoreAdapter {
	return fs.NewWorldStoreAdapter(&config.RuntimeConfig{DataDir: t.TempDir()})
}
