package governance

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// Guild wires the components of one guild over a shared state
type Guild struct {
	state *models.GuildState

	Members    *MembershipRegistry
	Ledger     *ProposalLedger
	Voting     *VotingEngine
	Minion     *Minion
	Authorizer *Authorizer
}

// NewGuild builds every component on top of state. Components mutate state in
// place, so persisting state after a call persists the whole guild.
func NewGuild(state *models.GuildState, clock Clock, tokens TokenBank, calls CallSubstrate) *Guild {
	state.Normalize()
	members := NewMembershipRegistry(&state.Membership)
	ledger := NewProposalLedger(state.Address, state.Params, &state.Ledger, members, tokens, clock)
	return &Guild{
		state:      state,
		Members:    members,
		Ledger:     ledger,
		Voting:     NewVotingEngine(ledger, clock),
		Minion:     NewMinion(&state.Minion, ledger, calls, clock),
		Authorizer: NewAuthorizer(state.Minion.Address, members),
	}
}

// State returns the underlying state
func (g *Guild) State() *models.GuildState {
	return g.state
}

// ValidateParams checks the governance constants a guild is summoned with
func ValidateParams(p models.GuildParams) error {
	switch {
	case p.VotingPeriod <= 0:
		return domain.Errorf(domain.ErrInvalidInput, "voting period must be positive")
	case p.GracePeriod < 0:
		return domain.Errorf(domain.ErrInvalidInput, "grace period cannot be negative")
	case p.DilutionBound == 0:
		return domain.Errorf(domain.ErrInvalidInput, "dilution bound must be positive")
	case p.QuorumPercentage > 100:
		return domain.Errorf(domain.ErrInvalidInput, "quorum percentage %d exceeds 100", p.QuorumPercentage)
	case len(p.ApprovedTokens) == 0:
		return domain.Errorf(domain.ErrInvalidInput, "at least one approved token is required")
	}
	seen := make(map[common.Address]bool, len(p.ApprovedTokens))
	for _, t := range p.ApprovedTokens {
		if t == (common.Address{}) {
			return domain.Errorf(domain.ErrZeroAddress, "approved token")
		}
		if seen[t] {
			return domain.Errorf(domain.ErrInvalidInput, "duplicate approved token %s", t.Hex())
		}
		seen[t] = true
	}
	deposit, reward := orZero(p.ProposalDeposit), orZero(p.ProcessingReward)
	if deposit.Sign() < 0 || reward.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if reward.Cmp(deposit) > 0 {
		return domain.Errorf(domain.ErrInvalidInput, "processing reward exceeds proposal deposit")
	}
	return nil
}
