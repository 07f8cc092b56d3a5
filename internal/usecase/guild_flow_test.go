package usecase_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

func TestSummonGuild(t *testing.T) {
	t.Run("deploys a tribute token when none is approved", func(t *testing.T) {
		h := newHarness(t)
		result := h.summon()

		require.NotNil(t, result.DeployedToken)
		assert.Equal(t, "GLD", result.DeployedToken.Symbol)
		assert.Equal(t, []common.Address{result.DeployedToken.Address}, result.Params.ApprovedTokens)
		assert.NotEqual(t, result.Guild, result.Minion)
		assert.Equal(t, uint64(1), result.SummonerShares)

		overview, err := usecase.NewListMembers(h.sessions).Run(h.ctx)
		require.NoError(t, err)
		require.Len(t, overview.Members, 1)
		assert.Equal(t, summoner, overview.Members[0].Address)
		assert.Equal(t, uint64(1), overview.TotalShares)
	})

	t.Run("second summon is rejected", func(t *testing.T) {
		h := newHarness(t)
		h.summon()

		_, err := usecase.NewSummonGuild(h.sessions, h.cfg, h.log).Run(h.ctx, usecase.SummonGuildParams{Summoner: alice})
		assert.ErrorIs(t, err, domain.ErrAlreadySummoned)
	})

	t.Run("approved token must exist", func(t *testing.T) {
		h := newHarness(t)
		h.cfg.Guild.ApprovedTokens = []string{"0x00000000000000000000000000000000000000aa"}

		_, err := usecase.NewSummonGuild(h.sessions, h.cfg, h.log).Run(h.ctx, usecase.SummonGuildParams{Summoner: summoner})
		assert.ErrorIs(t, err, domain.ErrInvalidToken)

		_, err = usecase.NewListMembers(h.sessions).Run(h.ctx)
		assert.ErrorIs(t, err, domain.ErrGuildNotSummoned)
	})

	t.Run("zero summoner", func(t *testing.T) {
		h := newHarness(t)
		_, err := usecase.NewSummonGuild(h.sessions, h.cfg, h.log).Run(h.ctx, usecase.SummonGuildParams{})
		assert.ErrorIs(t, err, domain.ErrZeroAddress)
	})
}

func TestMembershipFlow(t *testing.T) {
	h := newHarness(t)
	h.summon()
	h.fund(alice, 1000)

	submitted, err := usecase.NewSubmitProposal(h.sessions, h.log).Run(h.ctx, usecase.SubmitProposalParams{
		From:            alice,
		Applicant:       alice,
		SharesRequested: 5,
		TributeOffered:  big.NewInt(100),
		Description:     "alice joins",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusSubmitted, submitted.Status)
	id := submitted.Proposal.ID

	sponsored, err := usecase.NewSponsorProposal(h.sessions, h.log).Run(h.ctx, usecase.SponsorProposalParams{From: summoner, ProposalID: id})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusVoting, sponsored.Status)
	assert.Equal(t, genesis, sponsored.Proposal.VotingStartsAt)

	voted, err := usecase.NewSubmitVote(h.sessions, h.log).Run(h.ctx, usecase.SubmitVoteParams{From: summoner, ProposalID: id, Choice: models.VoteYes})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), voted.Vote.Weight)
	assert.Equal(t, uint64(1), voted.Proposal.Proposal.YesVotes)

	_, err = usecase.NewProcessProposal(h.sessions, h.log).Run(h.ctx, usecase.ProcessProposalParams{From: summoner, ProposalID: id})
	assert.ErrorIs(t, err, domain.ErrTooEarly)

	clockResult, err := usecase.NewAdvanceTime(h.sessions, h.log).Run(h.ctx, usecase.AdvanceTimeParams{ToProposal: &id})
	require.NoError(t, err)
	assert.Equal(t, sponsored.Proposal.GracePeriodEndsAt, clockResult.Now)

	processed, err := usecase.NewProcessProposal(h.sessions, h.log).Run(h.ctx, usecase.ProcessProposalParams{From: summoner, ProposalID: id})
	require.NoError(t, err)
	assert.True(t, processed.Outcome.Passed)
	assert.Equal(t, models.ProposalStatusPassed, processed.Proposal.Status)

	overview, err := usecase.NewListMembers(h.sessions).Run(h.ctx)
	require.NoError(t, err)
	assert.Len(t, overview.Members, 2)
	assert.Equal(t, uint64(6), overview.TotalShares)
	assert.Equal(t, big.NewInt(100), overview.Bank[h.token])

	balance, err := usecase.NewTokenBalance(h.sessions).Run(h.ctx, usecase.TokenBalanceParams{Account: alice})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(900), balance.Balance)
	assert.Equal(t, big.NewInt(100), balance.GuildBank)

	// processing reward and deposit remainder both return to the summoner
	balance, err = usecase.NewTokenBalance(h.sessions).Run(h.ctx, usecase.TokenBalanceParams{Account: summoner})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), balance.Balance)

	listed, err := usecase.NewListProposals(h.sessions).Run(h.ctx, usecase.ListProposalsParams{
		Statuses: []models.ProposalStatus{models.ProposalStatusPassed},
	})
	require.NoError(t, err)
	require.Len(t, listed.Proposals, 1)
	assert.Equal(t, 1, listed.ByStatus[models.ProposalStatusPassed])
}

func TestCancelProposal(t *testing.T) {
	h := newHarness(t)
	h.summon()
	h.fund(alice, 1000)

	view, err := usecase.NewSubmitProposal(h.sessions, h.log).Run(h.ctx, usecase.SubmitProposalParams{
		From:           alice,
		Applicant:      alice,
		TributeOffered: big.NewInt(50),
	})
	require.NoError(t, err)
	id := view.Proposal.ID

	_, err = usecase.NewCancelProposal(h.sessions, h.log).Run(h.ctx, usecase.CancelProposalParams{From: summoner, ProposalID: id})
	assert.ErrorIs(t, err, domain.ErrNotProposer)

	cancelled, err := usecase.NewCancelProposal(h.sessions, h.log).Run(h.ctx, usecase.CancelProposalParams{From: alice, ProposalID: id})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusCancelled, cancelled.Status)

	balance, err := usecase.NewTokenBalance(h.sessions).Run(h.ctx, usecase.TokenBalanceParams{Account: alice})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), balance.Balance)
}

func TestRagequit(t *testing.T) {
	h := newHarness(t)
	h.summon()
	h.join()

	result, err := usecase.NewRagequit(h.sessions, h.log).Run(h.ctx, usecase.RagequitParams{From: alice, All: true})
	require.NoError(t, err)
	require.Len(t, result.Withdrawals, 1)
	// 5 of 6 shares of a 100 token bank
	assert.Equal(t, big.NewInt(83), result.Withdrawals[0].Amount)
	assert.Zero(t, result.Member.Shares)

	_, err = usecase.NewRagequit(h.sessions, h.log).Run(h.ctx, usecase.RagequitParams{From: dave, Shares: 1})
	assert.ErrorIs(t, err, domain.ErrNotMember)
}

func TestShowProposal(t *testing.T) {
	h := newHarness(t)
	h.summon()
	show := usecase.NewShowProposal(h.sessions, nil, h.cfg)

	_, err := show.Run(h.ctx, usecase.ShowProposalParams{})
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)

	h.join()
	id := uint64(0)
	view, err := show.Run(h.ctx, usecase.ShowProposalParams{ProposalID: &id})
	require.NoError(t, err)
	assert.Equal(t, "alice joins", view.Proposal.Description)
	require.Len(t, view.Votes, 1)
	assert.True(t, view.Outcome.Passed)

	// without an id and without a terminal the caller must name one
	_, err = show.Run(h.ctx, usecase.ShowProposalParams{})
	assert.Error(t, err)

	missing := uint64(9)
	_, err = show.Run(h.ctx, usecase.ShowProposalParams{ProposalID: &missing})
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)
}
