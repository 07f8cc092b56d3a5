package governance_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/adapters/clock"
	"github.com/trebuchet-org/minion/internal/adapters/evm"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/governance"
)

const (
	votingPeriod = 600 * time.Second
	gracePeriod  = 600 * time.Second
)

var (
	summoner = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	bob      = common.HexToAddress("0x3000000000000000000000000000000000000003")
	carol    = common.HexToAddress("0x4000000000000000000000000000000000000004")
	dave     = common.HexToAddress("0x5000000000000000000000000000000000000005")
	deployer = common.HexToAddress("0x9000000000000000000000000000000000000009")

	genesis = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	t     *testing.T
	clock *clock.Manual
	sim   *evm.Simulator
	world *models.WorldState
	guild *governance.Guild
	token common.Address
	other common.Address
}

// wei scales whole tokens to 18 decimals
func wei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func defaultParams() models.GuildParams {
	return models.GuildParams{
		VotingPeriod:     votingPeriod,
		GracePeriod:      gracePeriod,
		QuorumPercentage: 0,
		DilutionBound:    3,
		ProposalDeposit:  big.NewInt(10),
		ProcessingReward: big.NewInt(1),
	}
}

func newFixture(t *testing.T, tweak ...func(*models.GuildParams)) *fixture {
	t.Helper()

	world := models.NewWorldState()
	sim := evm.NewSimulator(world)
	token := sim.DeployToken(deployer, "Test Token", "TST", 18)
	other := sim.DeployToken(deployer, "Other Token", "OTH", 18)

	params := defaultParams()
	params.ApprovedTokens = []common.Address{token}
	for _, fn := range tweak {
		fn(&params)
	}
	require.NoError(t, governance.ValidateParams(params))

	clk := clock.NewManual(genesis)
	guildAddr := sim.NextAddress(summoner)
	minionAddr := sim.NextAddress(guildAddr)
	world.Guild = models.NewGuildState(guildAddr, minionAddr, summoner, params, genesis)

	g := governance.NewGuild(world.Guild, clk, sim, sim)
	sim.BindAuthorizer(g.Authorizer)
	require.NoError(t, g.Members.Admit(summoner, 1, 0, genesis))

	f := &fixture{t: t, clock: clk, sim: sim, world: world, guild: g, token: token, other: other}
	for _, addr := range []common.Address{summoner, alice, bob, carol, dave} {
		f.fund(addr, wei(1000))
	}
	return f
}

func (f *fixture) guildAddress() common.Address {
	return f.world.Guild.Address
}

func (f *fixture) fund(addr common.Address, amount *big.Int) {
	f.t.Helper()
	require.NoError(f.t, f.sim.Mint(f.token, addr, amount))
	require.NoError(f.t, f.sim.Approve(f.token, addr, f.guildAddress(), wei(1_000_000)))
}

func (f *fixture) balance(addr common.Address) *big.Int {
	f.t.Helper()
	b, err := f.sim.BalanceOf(f.token, addr)
	require.NoError(f.t, err)
	return b
}

// membership submits a proposal admitting applicant for shares against tribute
func (f *fixture) membership(applicant common.Address, shares uint64, tribute *big.Int) uint64 {
	f.t.Helper()
	id, err := f.guild.Ledger.Submit(governance.SubmitParams{
		Proposer:         applicant,
		Applicant:        applicant,
		SharesRequested:  shares,
		TributeOffered:   tribute,
		TributeToken:     f.token,
		PaymentRequested: big.NewInt(0),
		PaymentToken:     f.token,
		Description:      "membership",
	})
	require.NoError(f.t, err)
	return id
}

func (f *fixture) sponsor(id uint64) models.Proposal {
	f.t.Helper()
	require.NoError(f.t, f.guild.Ledger.Sponsor(id, summoner))
	p, err := f.guild.Ledger.Proposal(id)
	require.NoError(f.t, err)
	return p
}

// warpTo moves the clock to at, never backwards
func (f *fixture) warpTo(at time.Time) {
	if d := at.Sub(f.clock.Now()); d > 0 {
		f.clock.Advance(d)
	}
}

func (f *fixture) vote(id uint64, voter common.Address, choice models.VoteChoice) {
	f.t.Helper()
	_, err := f.guild.Voting.CastVote(id, voter, choice)
	require.NoError(f.t, err)
}

// admit runs a full membership proposal through to processing
func (f *fixture) admit(applicant common.Address, shares uint64) {
	f.t.Helper()
	id := f.membership(applicant, shares, wei(100))
	p := f.sponsor(id)
	f.warpTo(p.VotingStartsAt)
	f.vote(id, summoner, models.VoteYes)
	f.warpTo(p.GracePeriodEndsAt)
	_, outcome, err := f.guild.Ledger.Process(id, summoner)
	require.NoError(f.t, err)
	require.True(f.t, outcome.Passed, outcome.Reason)
}
