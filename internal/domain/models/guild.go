package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MaxSharesAndLoot caps total shares plus loot, as the guild contract does
const MaxSharesAndLoot uint64 = 1_000_000_000_000_000_000

// GuildParams are the governance constants fixed when the guild is summoned
type GuildParams struct {
	VotingPeriod     time.Duration    `json:"votingPeriod"`
	GracePeriod      time.Duration    `json:"gracePeriod"`
	QuorumPercentage uint32           `json:"quorumPercentage"`
	DilutionBound    uint64           `json:"dilutionBound"`
	ProposalDeposit  *big.Int         `json:"proposalDeposit"`
	ProcessingReward *big.Int         `json:"processingReward"`
	ApprovedTokens   []common.Address `json:"approvedTokens"`
}

// DepositToken is the token deposits and rewards are paid in
func (p GuildParams) DepositToken() common.Address {
	if len(p.ApprovedTokens) == 0 {
		return common.Address{}
	}
	return p.ApprovedTokens[0]
}

// IsApproved reports whether token is on the allow-list
func (p GuildParams) IsApproved(token common.Address) bool {
	for _, t := range p.ApprovedTokens {
		if t == token {
			return true
		}
	}
	return false
}

// MembershipState is owned by the membership registry
type MembershipState struct {
	Members     map[common.Address]*Member `json:"members"`
	TotalShares uint64                     `json:"totalShares"`
	TotalLoot   uint64                     `json:"totalLoot"`
}

// LedgerState is owned by the proposal ledger
type LedgerState struct {
	Proposals []*Proposal                         `json:"proposals"`
	Queue     []uint64                            `json:"queue"`
	Votes     map[uint64]map[common.Address]*Vote `json:"votes"`
	Bank      map[common.Address]*big.Int         `json:"bank"`
}

// MinionState is owned by the minion
type MinionState struct {
	Address common.Address              `json:"address"`
	Actions map[uint64]*DelegatedAction `json:"actions"`
}

// GuildState is the complete persisted state of one guild
type GuildState struct {
	Address    common.Address  `json:"address"`
	Summoner   common.Address  `json:"summoner"`
	SummonedAt time.Time       `json:"summonedAt"`
	Params     GuildParams     `json:"params"`
	Membership MembershipState `json:"membership"`
	Ledger     LedgerState     `json:"ledger"`
	Minion     MinionState     `json:"minion"`
}

// NewGuildState creates an empty guild state with initialised maps
func NewGuildState(address, minion, summoner common.Address, params GuildParams, now time.Time) *GuildState {
	s := &GuildState{
		Address:    address,
		Summoner:   summoner,
		SummonedAt: now,
		Params:     params,
		Minion:     MinionState{Address: minion},
	}
	s.Normalize()
	return s
}

// Normalize fills maps left nil by decoding
func (s *GuildState) Normalize() {
	if s.Membership.Members == nil {
		s.Membership.Members = make(map[common.Address]*Member)
	}
	if s.Ledger.Votes == nil {
		s.Ledger.Votes = make(map[uint64]map[common.Address]*Vote)
	}
	if s.Ledger.Bank == nil {
		s.Ledger.Bank = make(map[common.Address]*big.Int)
	}
	if s.Minion.Actions == nil {
		s.Minion.Actions = make(map[uint64]*DelegatedAction)
	}
}
