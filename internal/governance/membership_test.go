package governance_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/governance"
)

func TestMembershipRegistry(t *testing.T) {
	state := &models.MembershipState{}
	r := governance.NewMembershipRegistry(state)

	require.ErrorIs(t, r.Admit(common.Address{}, 1, 0, genesis), domain.ErrZeroAddress)

	require.NoError(t, r.Admit(alice, 0, 0, genesis))
	assert.False(t, r.IsMember(alice))
	_, ok := r.Member(alice)
	assert.False(t, ok)

	require.NoError(t, r.Admit(alice, 10, 5, genesis))
	require.NoError(t, r.Admit(bob, 0, 7, genesis))
	require.NoError(t, r.Admit(alice, 1, 0, genesis.Add(1)))

	assert.True(t, r.IsMember(alice))
	assert.False(t, r.IsMember(bob), "loot carries no vote")
	assert.Equal(t, uint64(11), r.SharesOf(alice))
	assert.Equal(t, uint64(5), r.LootOf(alice))
	assert.Equal(t, uint64(11), r.TotalShares())
	assert.Equal(t, uint64(12), r.TotalLoot())
	assert.Equal(t, uint64(23), r.TotalSharesAndLoot())

	m, ok := r.Member(alice)
	require.True(t, ok)
	assert.Equal(t, genesis, m.JoinedAt)

	members := r.Members()
	require.Len(t, members, 2)
	assert.Equal(t, alice, members[0].Address)
	assert.Equal(t, bob, members[1].Address)

	require.ErrorIs(t, r.Admit(carol, models.MaxSharesAndLoot, 0, genesis), domain.ErrShareLimit)
	assert.Equal(t, uint64(23), r.TotalSharesAndLoot())

	require.ErrorIs(t, r.Burn(carol, 1, 0), domain.ErrNotMember)
	require.ErrorIs(t, r.Burn(alice, 12, 0), domain.ErrInsufficient)
	require.NoError(t, r.Burn(alice, 11, 5))
	assert.False(t, r.IsMember(alice))
	assert.Equal(t, uint64(7), r.TotalSharesAndLoot())
}
