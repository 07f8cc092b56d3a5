package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Member is a guild member. Records are never deleted, only zeroed.
type Member struct {
	Address  common.Address `json:"address"`
	Shares   uint64         `json:"shares"`
	Loot     uint64         `json:"loot"`
	JoinedAt time.Time      `json:"joinedAt"`

	// HighestYesVote is the id of the latest proposal the member voted yes on
	HighestYesVote *uint64 `json:"highestYesVote,omitempty"`
}

// Active reports whether the member currently holds voting shares
func (m *Member) Active() bool {
	return m != nil && m.Shares > 0
}
