package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/adapters/clock"
	"github.com/trebuchet-org/minion/internal/adapters/substrate"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

func TestSessions_Mutate(t *testing.T) {
	ctx := context.Background()
	runtime := substrate.NewSimulatedAdapterWithClock(clock.NewManual(genesis))

	t.Run("saves on success", func(t *testing.T) {
		store := new(MockWorldStore)
		store.On("Load", mock.Anything).Return(models.NewWorldState(), nil)
		store.On("Save", mock.Anything, mock.MatchedBy(func(w *models.WorldState) bool {
			return len(w.Tokens) == 1
		})).Return(nil)

		sessions := usecase.NewSessions(store, runtime, discardLogger())
		err := sessions.Mutate(ctx, "deploy", func(s *usecase.Session) error {
			s.Chain.DeployToken(summoner, "Token", "TKN", 18)
			return nil
		})
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("rejected operation is not saved", func(t *testing.T) {
		store := new(MockWorldStore)
		store.On("Load", mock.Anything).Return(models.NewWorldState(), nil)

		sessions := usecase.NewSessions(store, runtime, discardLogger())
		_, err := usecase.NewSubmitProposal(sessions, discardLogger()).Run(ctx, usecase.SubmitProposalParams{
			From:      alice,
			Applicant: alice,
		})
		assert.ErrorIs(t, err, domain.ErrGuildNotSummoned)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("load failure", func(t *testing.T) {
		store := new(MockWorldStore)
		store.On("Load", mock.Anything).Return(nil, errors.New("disk gone"))

		sessions := usecase.NewSessions(store, runtime, discardLogger())
		_, err := usecase.NewCurrentTime(sessions).Run(ctx)
		assert.ErrorContains(t, err, "disk gone")
	})

	t.Run("save failure", func(t *testing.T) {
		store := new(MockWorldStore)
		store.On("Load", mock.Anything).Return(models.NewWorldState(), nil)
		store.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only"))

		sessions := usecase.NewSessions(store, runtime, discardLogger())
		_, err := usecase.NewSummonGuild(sessions, &configDefaults, discardLogger()).Run(ctx, usecase.SummonGuildParams{Summoner: summoner})
		assert.ErrorContains(t, err, "failed to update world: read-only")
	})
}

func TestSubmitProposal_LeavesWorldUntouchedOnFailure(t *testing.T) {
	h := newHarness(t)
	h.summon()

	// no allowance, so the tribute cannot be escrowed
	_, err := usecase.NewSubmitProposal(h.sessions, h.log).Run(h.ctx, usecase.SubmitProposalParams{
		From:           dave,
		Applicant:      dave,
		TributeOffered: big.NewInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficient)

	listed, err := usecase.NewListProposals(h.sessions).Run(h.ctx, usecase.ListProposalsParams{})
	require.NoError(t, err)
	assert.Empty(t, listed.Proposals)
}

func TestAdvanceTime(t *testing.T) {
	t.Run("offset persists with the world", func(t *testing.T) {
		h := newHarness(t)
		sessions := usecase.NewSessions(newFileStore(t), substrate.NewSimulatedAdapter(), h.log)
		advance := usecase.NewAdvanceTime(sessions, h.log)

		before, err := usecase.NewCurrentTime(sessions).Run(h.ctx)
		require.NoError(t, err)
		assert.Zero(t, before.Offset)

		result, err := advance.Run(h.ctx, usecase.AdvanceTimeParams{By: time.Hour})
		require.NoError(t, err)
		assert.Equal(t, time.Hour, result.Offset)

		after, err := usecase.NewCurrentTime(sessions).Run(h.ctx)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, after.Offset)
		assert.False(t, after.Now.Before(before.Now.Add(time.Hour)))
	})

	t.Run("backwards is rejected", func(t *testing.T) {
		h := newHarness(t)
		_, err := usecase.NewAdvanceTime(h.sessions, h.log).Run(h.ctx, usecase.AdvanceTimeParams{By: -time.Second})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("to an unsponsored proposal", func(t *testing.T) {
		h := newHarness(t)
		h.summon()
		view, err := usecase.NewSubmitProposal(h.sessions, h.log).Run(h.ctx, usecase.SubmitProposalParams{From: alice, Applicant: alice})
		require.NoError(t, err)

		_, err = usecase.NewAdvanceTime(h.sessions, h.log).Run(h.ctx, usecase.AdvanceTimeParams{ToProposal: &view.Proposal.ID})
		assert.ErrorIs(t, err, domain.ErrNotSponsored)
	})
}

func TestResetWorld(t *testing.T) {
	h := newHarness(t)
	h.summon()
	h.join()

	result, err := usecase.NewResetWorld(h.sessions, h.log).Run(h.ctx)
	require.NoError(t, err)
	assert.True(t, result.HadGuild)
	assert.Equal(t, 1, result.Proposals)
	assert.Equal(t, 1, result.Tokens)

	_, err = usecase.NewListMembers(h.sessions).Run(h.ctx)
	assert.ErrorIs(t, err, domain.ErrGuildNotSummoned)
}
