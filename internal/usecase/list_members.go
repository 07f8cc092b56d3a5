package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// GuildOverview describes the guild and its members
type GuildOverview struct {
	Guild       common.Address
	Minion      common.Address
	Summoner    common.Address
	Params      models.GuildParams
	Members     []models.Member
	TotalShares uint64
	TotalLoot   uint64
	Bank        map[common.Address]*big.Int
	Queue       []uint64
}

// ListMembers reports the guild's members and bank
type ListMembers struct {
	sessions *Sessions
}

// NewListMembers creates a new list members use case
func NewListMembers(sessions *Sessions) *ListMembers {
	return &ListMembers{sessions: sessions}
}

// Run builds the overview
func (uc *ListMembers) Run(ctx context.Context) (*GuildOverview, error) {
	var overview *GuildOverview
	err := uc.sessions.View(ctx, func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		state := g.State()
		overview = &GuildOverview{
			Guild:       state.Address,
			Minion:      state.Minion.Address,
			Summoner:    state.Summoner,
			Params:      state.Params,
			Members:     g.Members.Members(),
			TotalShares: g.Members.TotalShares(),
			TotalLoot:   g.Members.TotalLoot(),
			Bank:        make(map[common.Address]*big.Int),
			Queue:       g.Ledger.Queue(),
		}
		for _, token := range state.Params.ApprovedTokens {
			overview.Bank[token] = g.Ledger.BankBalance(token)
		}
		return nil
	})
	return overview, err
}
