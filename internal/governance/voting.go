package governance

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// Outcome is the result of a finished vote
type Outcome struct {
	Passed bool
	Reason string
}

// VotingEngine validates ballots and derives outcomes
type VotingEngine struct {
	ledger *ProposalLedger
	clock  Clock
}

// NewVotingEngine creates a voting engine writing through the ledger
func NewVotingEngine(ledger *ProposalLedger, clock Clock) *VotingEngine {
	return &VotingEngine{ledger: ledger, clock: clock}
}

// CastVote records a ballot weighted by the voter's shares at sponsorship
func (e *VotingEngine) CastVote(id uint64, voter common.Address, choice models.VoteChoice) (models.Vote, error) {
	if !choice.Valid() {
		return models.Vote{}, domain.ErrInvalidChoice
	}
	p, err := e.ledger.proposal(id)
	if err != nil {
		return models.Vote{}, err
	}
	if !p.Sponsored {
		return models.Vote{}, domain.ErrNotSponsored
	}
	now := e.clock.Now()
	if p.Processed || !p.VotingOpen(now) {
		return models.Vote{}, domain.Errorf(domain.ErrVotingClosed, "window is [%s, %s)",
			p.VotingStartsAt.UTC(), p.VotingEndsAt.UTC())
	}
	weight := p.Weights[voter]
	if weight == 0 {
		return models.Vote{}, domain.Errorf(domain.ErrNotMember, "%s held no shares when proposal %d was sponsored", voter.Hex(), id)
	}
	if e.ledger.hasVoted(id, voter) {
		return models.Vote{}, domain.ErrDuplicateVote
	}

	vote := &models.Vote{
		ProposalID: id,
		Voter:      voter,
		Choice:     choice,
		Weight:     weight,
		CastAt:     now,
	}
	e.ledger.recordVote(p, vote)
	return *vote, nil
}

// Outcome re-derives the outcome a proposal would get if processed now
func (e *VotingEngine) Outcome(id uint64) (Outcome, error) {
	p, err := e.ledger.proposal(id)
	if err != nil {
		return Outcome{}, err
	}
	if p.Processed {
		return Outcome{Passed: p.DidPass}, nil
	}
	l := e.ledger
	return DecideOutcome(p, l.params, l.members.TotalSharesAndLoot(), l.BankBalance(p.PaymentToken)), nil
}

// DecideOutcome applies the pass rules to final tallies. It is pure.
func DecideOutcome(p *models.Proposal, params models.GuildParams, totalSharesAndLoot uint64, bank *big.Int) Outcome {
	yes := new(big.Int).SetUint64(p.YesVotes)

	if p.YesVotes <= p.NoVotes {
		return Outcome{Reason: "yes votes do not exceed no votes"}
	}

	quorum := new(big.Int).Mul(new(big.Int).SetUint64(p.TotalSharesAtSponsor), big.NewInt(int64(params.QuorumPercentage)))
	if new(big.Int).Mul(yes, big.NewInt(100)).Cmp(quorum) < 0 {
		return Outcome{Reason: "quorum not met"}
	}

	bound := new(big.Int).Mul(new(big.Int).SetUint64(totalSharesAndLoot), new(big.Int).SetUint64(params.DilutionBound))
	if bound.Cmp(new(big.Int).SetUint64(p.MaxTotalSharesAndLootAtYesVote)) < 0 {
		return Outcome{Reason: "dilution bound exceeded"}
	}

	requested := p.SharesRequested + p.LootRequested
	if requested > models.MaxSharesAndLoot-totalSharesAndLoot {
		return Outcome{Reason: "share limit exceeded"}
	}

	if orZero(p.PaymentRequested).Cmp(orZero(bank)) > 0 {
		return Outcome{Reason: "guild bank cannot cover payment"}
	}

	return Outcome{Passed: true}
}
