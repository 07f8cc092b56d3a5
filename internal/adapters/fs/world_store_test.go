package fs

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

func newTestWorldStore(t *testing.T) (*WorldStoreAdapter, string) {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := &config.RuntimeConfig{
		DataDir: tmpDir,
	}
	return NewWorldStoreAdapter(cfg), tmpDir
}

func TestWorldStore_LoadEmpty(t *testing.T) {
	store, _ := newTestWorldStore(t)

	world, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, world)
	assert.Nil(t, world.Guild)
	assert.NotNil(t, world.Collectibles)
	assert.NotNil(t, world.Nonces)
}

func TestWorldStore_SaveAndLoad(t *testing.T) {
	store, dir := newTestWorldStore(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second).UTC()

	alice := common.HexToAddress("0x2000000000000000000000000000000000000002")
	minion := common.HexToAddress("0x3000000000000000000000000000000000000003")
	nft := common.HexToAddress("0x4000000000000000000000000000000000000004")
	token := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	highest := uint64(0)

	world := models.NewWorldState()
	world.Collectibles[nft] = &models.CollectibleState{
		Address:     nft,
		Minion:      minion,
		NextTokenID: 1,
		Owners:      map[uint64]common.Address{0: alice},
		Balances:    map[common.Address]uint64{alice: 1},
	}
	world.Guild = models.NewGuildState(common.HexToAddress("0x01"), minion, alice, models.GuildParams{
		VotingPeriod:    10 * time.Minute,
		GracePeriod:     10 * time.Minute,
		DilutionBound:   3,
		ProposalDeposit: big.NewInt(10),
		ApprovedTokens:  []common.Address{token},
	}, now)
	world.Guild.Membership.Members[alice] = &models.Member{Address: alice, Shares: 100, HighestYesVote: &highest}
	world.Guild.Ledger.Proposals = []*models.Proposal{{
		ID:             0,
		Proposer:       minion,
		Applicant:      minion,
		TributeOffered: big.NewInt(0),
		Action:         &models.ActionPayload{Target: nft, Value: big.NewInt(0), Data: []byte{0x6a, 0x62, 0x78, 0x42}},
		Sponsored:      true,
		VotingStartsAt: now,
		Weights:        map[common.Address]uint64{alice: 100},
		YesVotes:       100,
	}}
	world.Guild.Ledger.Votes[0] = map[common.Address]*models.Vote{
		alice: {ProposalID: 0, Voter: alice, Choice: models.VoteYes, Weight: 100, CastAt: now},
	}
	world.Guild.Minion.Actions[0] = &models.DelegatedAction{ProposalID: 0, Target: nft, Status: models.ActionStatusExecuted}

	require.NoError(t, store.Save(ctx, world))
	_, err := os.Stat(filepath.Join(dir, "world.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "world.json.tmp"))
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), loaded.Collectibles[nft].Balances[alice])
	assert.Equal(t, alice, loaded.Collectibles[nft].Owners[0])

	g := loaded.Guild
	require.NotNil(t, g)
	require.NotNil(t, g.Membership.Members[alice].HighestYesVote)
	assert.Equal(t, uint64(0), *g.Membership.Members[alice].HighestYesVote)
	require.Len(t, g.Ledger.Proposals, 1)
	assert.Equal(t, []byte{0x6a, 0x62, 0x78, 0x42}, []byte(g.Ledger.Proposals[0].Action.Data))
	assert.True(t, now.Equal(g.Ledger.Proposals[0].VotingStartsAt))
	assert.Equal(t, uint64(100), g.Ledger.Proposals[0].Weights[alice])
	assert.Equal(t, models.VoteYes, g.Ledger.Votes[0][alice].Choice)
	assert.Equal(t, models.ActionStatusExecuted, g.Minion.Actions[0].Status)
	assert.Equal(t, big.NewInt(10), g.Params.ProposalDeposit)
}

func TestWorldStore_CorruptFile(t *testing.T) {
	store, dir := newTestWorldStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "world.json"), []byte("{not json"), 0644))

	_, err := store.Load(context.Background())
	assert.ErrorContains(t, err, "failed to parse world file")
}

func TestWorldStore_Reset(t *testing.T) {
	store, _ := newTestWorldStore(t)
	ctx := context.Background()

	// Reset without a file is fine
	require.NoError(t, store.Reset(ctx))

	world := models.NewWorldState()
	world.ClockOffset = time.Hour
	require.NoError(t, store.Save(ctx, world))
	require.NoError(t, store.Reset(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, loaded.ClockOffset)
}

func TestWorldStore_Update(t *testing.T) {
	store, _ := newTestWorldStore(t)
	ctx := context.Background()
	deployer := common.HexToAddress("0x9000000000000000000000000000000000000009")

	t.Run("concurrent updates all land", func(t *testing.T) {
		const n = 16
		errs := make(chan error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.Update(ctx, func(w *models.WorldState) error {
					w.Nonces[deployer]++
					return nil
				})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		world, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(n), world.Nonces[deployer])
	})

	t.Run("failed update writes nothing", func(t *testing.T) {
		rejected := errors.New("rejected")
		err := store.Update(ctx, func(w *models.WorldState) error {
			w.Nonces[deployer] = 1000
			return rejected
		})
		assert.ErrorIs(t, err, rejected)

		world, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(16), world.Nonces[deployer])
	})
}
