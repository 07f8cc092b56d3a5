package governance

import (
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// MembershipRegistry tracks members and their voting weight
type MembershipRegistry struct {
	state *models.MembershipState
}

// NewMembershipRegistry wraps the given membership state
func NewMembershipRegistry(state *models.MembershipState) *MembershipRegistry {
	if state.Members == nil {
		state.Members = make(map[common.Address]*models.Member)
	}
	return &MembershipRegistry{state: state}
}

// IsMember reports whether addr holds voting shares
func (r *MembershipRegistry) IsMember(addr common.Address) bool {
	return r.state.Members[addr].Active()
}

// SharesOf returns the voting shares of addr
func (r *MembershipRegistry) SharesOf(addr common.Address) uint64 {
	if m, ok := r.state.Members[addr]; ok {
		return m.Shares
	}
	return 0
}

// LootOf returns the non-voting loot of addr
func (r *MembershipRegistry) LootOf(addr common.Address) uint64 {
	if m, ok := r.state.Members[addr]; ok {
		return m.Loot
	}
	return 0
}

// Member returns a copy of the member record
func (r *MembershipRegistry) Member(addr common.Address) (models.Member, bool) {
	m, ok := r.state.Members[addr]
	if !ok {
		return models.Member{}, false
	}
	return *m, true
}

// Members returns all member records ordered by address
func (r *MembershipRegistry) Members() []models.Member {
	members := make([]models.Member, 0, len(r.state.Members))
	for _, m := range r.state.Members {
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Address.Cmp(members[j].Address) < 0
	})
	return members
}

func (r *MembershipRegistry) TotalShares() uint64 { return r.state.TotalShares }

func (r *MembershipRegistry) TotalLoot() uint64 { return r.state.TotalLoot }

// TotalSharesAndLoot is the denominator for dilution and ragequit
func (r *MembershipRegistry) TotalSharesAndLoot() uint64 {
	return r.state.TotalShares + r.state.TotalLoot
}

// Admit creates or tops up a member. It is the only way shares enter the guild.
func (r *MembershipRegistry) Admit(addr common.Address, shares, loot uint64, now time.Time) error {
	if addr == (common.Address{}) {
		return domain.ErrZeroAddress
	}
	if shares == 0 && loot == 0 {
		return nil
	}
	total := r.TotalSharesAndLoot()
	if shares > models.MaxSharesAndLoot-total || loot > models.MaxSharesAndLoot-total-shares {
		return domain.Errorf(domain.ErrShareLimit, "admitting %d shares and %d loot", shares, loot)
	}

	m, ok := r.state.Members[addr]
	if !ok {
		m = &models.Member{Address: addr, JoinedAt: now}
		r.state.Members[addr] = m
	}
	m.Shares += shares
	m.Loot += loot
	r.state.TotalShares += shares
	r.state.TotalLoot += loot
	return nil
}

// Burn removes shares and loot from a member. The record stays, zeroed if emptied.
func (r *MembershipRegistry) Burn(addr common.Address, shares, loot uint64) error {
	m, ok := r.state.Members[addr]
	if !ok {
		return domain.ErrNotMember
	}
	if m.Shares < shares || m.Loot < loot {
		return domain.Errorf(domain.ErrInsufficient, "member %s holds %d shares and %d loot", addr.Hex(), m.Shares, m.Loot)
	}
	m.Shares -= shares
	m.Loot -= loot
	r.state.TotalShares -= shares
	r.state.TotalLoot -= loot
	return nil
}

// snapshot copies current voting weights of active members
func (r *MembershipRegistry) snapshot() map[common.Address]uint64 {
	weights := make(map[common.Address]uint64, len(r.state.Members))
	for addr, m := range r.state.Members {
		if m.Shares > 0 {
			weights[addr] = m.Shares
		}
	}
	return weights
}

func (r *MembershipRegistry) recordYesVote(addr common.Address, proposalID uint64) {
	m, ok := r.state.Members[addr]
	if !ok {
		return
	}
	if m.HighestYesVote == nil || *m.HighestYesVote < proposalID {
		id := proposalID
		m.HighestYesVote = &id
	}
}
