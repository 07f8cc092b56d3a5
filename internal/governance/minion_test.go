package governance_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

var target = common.HexToAddress("0x7000000000000000000000000000000000000007")

// recorder counts the calls it receives and optionally runs a hook
type recorder struct {
	calls  int
	caller common.Address
	data   []byte
	hook   func(ctx context.Context) ([]byte, error)
}

func (r *recorder) Call(ctx context.Context, caller common.Address, value *big.Int, data []byte) ([]byte, error) {
	r.calls++
	r.caller = caller
	r.data = data
	if r.hook != nil {
		return r.hook(ctx)
	}
	return []byte{0x01}, nil
}

// propose queues an action and sponsors it
func (f *fixture) propose(data []byte) models.Proposal {
	f.t.Helper()
	id, err := f.guild.Minion.ProposeAction(alice, target, big.NewInt(0), data, "call target")
	require.NoError(f.t, err)
	return f.sponsor(id)
}

// pass votes an action proposal through and processes it
func (f *fixture) pass(p models.Proposal, choice models.VoteChoice) {
	f.t.Helper()
	f.warpTo(p.VotingStartsAt)
	f.vote(p.ID, summoner, choice)
	f.warpTo(p.GracePeriodEndsAt)
	_, _, err := f.guild.Ledger.Process(p.ID, summoner)
	require.NoError(f.t, err)
}

func TestMinion_ProposeAction(t *testing.T) {
	f := newFixture(t)

	_, err := f.guild.Minion.ProposeAction(alice, common.Address{}, nil, nil, "nowhere")
	require.ErrorIs(t, err, domain.ErrZeroAddress)
	assert.Empty(t, f.guild.Ledger.Proposals())

	_, err = f.guild.Minion.ProposeAction(alice, target, big.NewInt(-1), nil, "negative")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	id, err := f.guild.Minion.ProposeAction(alice, target, nil, []byte{0xde, 0xad}, "poke")
	require.NoError(t, err)

	p, err := f.guild.Ledger.Proposal(id)
	require.NoError(t, err)
	assert.Equal(t, f.guild.Minion.Address(), p.Proposer)
	assert.Equal(t, f.guild.Minion.Address(), p.Applicant)
	assert.Zero(t, p.SharesRequested)
	require.True(t, p.HasAction())
	assert.Equal(t, target, p.Action.Target)

	action, err := f.guild.Minion.Action(id)
	require.NoError(t, err)
	assert.Equal(t, alice, action.Proposer)
	assert.Equal(t, models.ActionStatusPending, action.Status)
	assert.Equal(t, []byte{0xde, 0xad}, action.Data)
	assert.Len(t, f.guild.Minion.Actions(), 1)

	_, err = f.guild.Minion.Action(42)
	require.ErrorIs(t, err, domain.ErrActionNotFound)
}

func TestMinion_ExecuteAction(t *testing.T) {
	ctx := context.Background()

	t.Run("not ready before the proposal passes", func(t *testing.T) {
		f := newFixture(t)
		rec := &recorder{}
		f.sim.RegisterContract(target, rec)
		p := f.propose([]byte{0x01})

		_, err := f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.ErrorIs(t, err, domain.ErrNotReady)

		f.vote(p.ID, summoner, models.VoteYes)
		f.warpTo(p.GracePeriodEndsAt)

		// ready but unprocessed is still not executable
		_, err = f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.ErrorIs(t, err, domain.ErrNotReady)
		assert.Zero(t, rec.calls)

		action, _ := f.guild.Minion.Action(p.ID)
		assert.Equal(t, models.ActionStatusPending, action.Status)
	})

	t.Run("not ready after the proposal fails", func(t *testing.T) {
		f := newFixture(t)
		rec := &recorder{}
		f.sim.RegisterContract(target, rec)
		p := f.propose(nil)
		f.pass(p, models.VoteNo)

		_, err := f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.ErrorIs(t, err, domain.ErrNotReady)
		assert.Zero(t, rec.calls)
	})

	t.Run("proposals without an action are not executable", func(t *testing.T) {
		f := newFixture(t)
		f.admit(alice, 10)

		_, err := f.guild.Minion.ExecuteAction(ctx, 0)
		require.ErrorIs(t, err, domain.ErrNotReady)
	})

	t.Run("executes once as the minion", func(t *testing.T) {
		f := newFixture(t)
		rec := &recorder{}
		f.sim.RegisterContract(target, rec)
		p := f.propose([]byte{0xca, 0xfe})
		f.pass(p, models.VoteYes)

		action, err := f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ActionStatusExecuted, action.Status)
		assert.Equal(t, []byte{0x01}, action.ReturnData)
		assert.Equal(t, f.clock.Now(), action.ExecutedAt)

		assert.Equal(t, 1, rec.calls)
		assert.Equal(t, f.guild.Minion.Address(), rec.caller)
		assert.Equal(t, []byte{0xca, 0xfe}, rec.data)

		_, err = f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.ErrorIs(t, err, domain.ErrAlreadyExecuted)
		assert.Equal(t, 1, rec.calls)
	})

	t.Run("failed call marks the action failed", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("boom")
		rec := &recorder{hook: func(context.Context) ([]byte, error) { return nil, boom }}
		f.sim.RegisterContract(target, rec)
		p := f.propose(nil)
		f.pass(p, models.VoteYes)

		action, err := f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.ErrorIs(t, err, domain.ErrActionExecutionFailed)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, domain.KindExternalCallFailure, domain.KindOf(err))

		var actionErr *domain.ActionError
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, p.ID, actionErr.ProposalID)

		assert.Equal(t, models.ActionStatusFailed, action.Status)
		assert.Equal(t, "boom", action.Failure)

		_, err = f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.ErrorIs(t, err, domain.ErrAlreadyExecuted)
		assert.Equal(t, 1, rec.calls)
	})

	t.Run("reentrant execution is rejected", func(t *testing.T) {
		f := newFixture(t)
		var reentrant error
		rec := &recorder{}
		f.sim.RegisterContract(target, rec)
		p := f.propose(nil)
		rec.hook = func(ctx context.Context) ([]byte, error) {
			_, reentrant = f.guild.Minion.ExecuteAction(ctx, p.ID)
			return nil, nil
		}
		f.pass(p, models.VoteYes)

		_, err := f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.NoError(t, err)
		require.ErrorIs(t, reentrant, domain.ErrAlreadyExecuted)
		assert.Equal(t, 1, rec.calls)
	})

	t.Run("call to an empty address fails", func(t *testing.T) {
		f := newFixture(t)
		p := f.propose(nil)
		f.pass(p, models.VoteYes)

		action, err := f.guild.Minion.ExecuteAction(ctx, p.ID)
		require.ErrorIs(t, err, domain.ErrActionExecutionFailed)
		assert.Equal(t, models.ActionStatusFailed, action.Status)
	})
}
