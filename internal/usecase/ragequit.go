package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/governance"
)

// Ragequit lets a member leave with a share of the bank
type Ragequit struct {
	sessions *Sessions
	log      *slog.Logger
}

// NewRagequit creates a new ragequit use case
func NewRagequit(sessions *Sessions, log *slog.Logger) *Ragequit {
	return &Ragequit{sessions: sessions, log: log}
}

// RagequitParams contains the shares and loot to burn
type RagequitParams struct {
	From   common.Address
	Shares uint64
	Loot   uint64
	All    bool
}

// RagequitResult contains the payout and what is left of the member
type RagequitResult struct {
	Withdrawals []governance.Withdrawal
	Member      models.Member
}

// Run burns the shares and loot and pays out
func (uc *Ragequit) Run(ctx context.Context, params RagequitParams) (*RagequitResult, error) {
	result := &RagequitResult{}
	err := uc.sessions.Mutate(ctx, "ragequit", func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		shares, loot := params.Shares, params.Loot
		if params.All {
			shares, loot = g.Members.SharesOf(params.From), g.Members.LootOf(params.From)
		}
		if result.Withdrawals, err = g.Ledger.Ragequit(params.From, shares, loot); err != nil {
			return err
		}
		result.Member, _ = g.Members.Member(params.From)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("member ragequit", "member", params.From.Hex(), "sharesLeft", result.Member.Shares, "lootLeft", result.Member.Loot)
	return result, nil
}
