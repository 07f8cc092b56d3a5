package governance

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// SubmitParams describes a new proposal
type SubmitParams struct {
	Proposer         common.Address
	Applicant        common.Address
	SharesRequested  uint64
	LootRequested    uint64
	TributeOffered   *big.Int
	TributeToken     common.Address
	PaymentRequested *big.Int
	PaymentToken     common.Address
	Action           *models.ActionPayload
	Description      string
}

// ProposalLedger owns proposals and votes and drives their lifecycle
type ProposalLedger struct {
	guild   common.Address
	params  models.GuildParams
	state   *models.LedgerState
	members *MembershipRegistry
	tokens  TokenBank
	clock   Clock
}

// NewProposalLedger wraps the given ledger state
func NewProposalLedger(guild common.Address, params models.GuildParams, state *models.LedgerState, members *MembershipRegistry, tokens TokenBank, clock Clock) *ProposalLedger {
	if state.Votes == nil {
		state.Votes = make(map[uint64]map[common.Address]*models.Vote)
	}
	if state.Bank == nil {
		state.Bank = make(map[common.Address]*big.Int)
	}
	return &ProposalLedger{
		guild:   guild,
		params:  params,
		state:   state,
		members: members,
		tokens:  tokens,
		clock:   clock,
	}
}

// Params returns the governance constants of the guild
func (l *ProposalLedger) Params() models.GuildParams {
	return l.params
}

// Submit records a new proposal and escrows its tribute
func (l *ProposalLedger) Submit(p SubmitParams) (uint64, error) {
	tribute := orZero(p.TributeOffered)
	payment := orZero(p.PaymentRequested)

	if p.Applicant == (common.Address{}) {
		return 0, domain.Errorf(domain.ErrZeroAddress, "applicant")
	}
	if p.Applicant == l.guild {
		return 0, domain.Errorf(domain.ErrInvalidInput, "applicant cannot be the guild")
	}
	if !l.params.IsApproved(p.TributeToken) {
		return 0, domain.Errorf(domain.ErrInvalidToken, "tribute token %s", p.TributeToken.Hex())
	}
	if !l.params.IsApproved(p.PaymentToken) {
		return 0, domain.Errorf(domain.ErrInvalidToken, "payment token %s", p.PaymentToken.Hex())
	}
	if tribute.Sign() < 0 || payment.Sign() < 0 {
		return 0, domain.ErrInvalidAmount
	}
	if p.SharesRequested > models.MaxSharesAndLoot || p.LootRequested > models.MaxSharesAndLoot-p.SharesRequested {
		return 0, domain.Errorf(domain.ErrShareLimit, "%d shares and %d loot", p.SharesRequested, p.LootRequested)
	}
	if p.Action != nil && p.Action.Value != nil && p.Action.Value.Sign() < 0 {
		return 0, domain.ErrInvalidAmount
	}

	if tribute.Sign() > 0 {
		if err := l.tokens.TransferFrom(p.TributeToken, l.guild, p.Proposer, l.guild, tribute); err != nil {
			return 0, fmt.Errorf("%w: escrowing tribute: %v", domain.ErrInsufficient, err)
		}
	}

	id := uint64(len(l.state.Proposals))
	l.state.Proposals = append(l.state.Proposals, &models.Proposal{
		ID:               id,
		Proposer:         p.Proposer,
		Applicant:        p.Applicant,
		Description:      p.Description,
		SharesRequested:  p.SharesRequested,
		LootRequested:    p.LootRequested,
		TributeOffered:   new(big.Int).Set(tribute),
		TributeToken:     p.TributeToken,
		PaymentRequested: new(big.Int).Set(payment),
		PaymentToken:     p.PaymentToken,
		Action:           copyAction(p.Action),
		SubmittedAt:      l.clock.Now(),
	})
	return id, nil
}

// Sponsor moves a submitted proposal into the voting queue
func (l *ProposalLedger) Sponsor(id uint64, sponsor common.Address) error {
	p, err := l.proposal(id)
	if err != nil {
		return err
	}
	if !l.members.IsMember(sponsor) {
		return domain.Errorf(domain.ErrNotMember, "sponsor %s", sponsor.Hex())
	}
	if p.Cancelled {
		return domain.ErrCancelled
	}
	if p.Sponsored {
		return domain.ErrAlreadySponsored
	}
	requested := p.SharesRequested + p.LootRequested
	if requested > models.MaxSharesAndLoot-l.members.TotalSharesAndLoot() {
		return domain.Errorf(domain.ErrShareLimit, "guild would exceed %d shares and loot", models.MaxSharesAndLoot)
	}

	now := l.clock.Now()
	start := now
	if n := len(l.state.Queue); n > 0 {
		prev := l.state.Proposals[l.state.Queue[n-1]]
		if prev.VotingEndsAt.After(start) {
			start = prev.VotingEndsAt
		}
		// Only a stored world with a zero-length or inverted window can get
		// here, as valid params always end a window after it starts.
		if !start.After(prev.VotingStartsAt) {
			return domain.Errorf(domain.ErrQueueOrdering, "start %s not after proposal %d start %s",
				start.UTC(), prev.ID, prev.VotingStartsAt.UTC())
		}
	}

	deposit := orZero(l.params.ProposalDeposit)
	if deposit.Sign() > 0 {
		if err := l.tokens.TransferFrom(l.params.DepositToken(), l.guild, sponsor, l.guild, deposit); err != nil {
			return fmt.Errorf("%w: escrowing proposal deposit: %v", domain.ErrInsufficient, err)
		}
	}

	p.Sponsored = true
	p.Sponsor = sponsor
	p.SponsoredAt = now
	p.VotingStartsAt = start
	p.VotingEndsAt = start.Add(l.params.VotingPeriod)
	p.GracePeriodEndsAt = p.VotingEndsAt.Add(l.params.GracePeriod)
	p.Deposit = new(big.Int).Set(deposit)
	p.Weights = l.members.snapshot()
	p.TotalSharesAtSponsor = l.members.TotalShares()
	l.state.Queue = append(l.state.Queue, id)
	return nil
}

// Process finalises a proposal once its grace period has elapsed
func (l *ProposalLedger) Process(id uint64, processor common.Address) (*models.Proposal, Outcome, error) {
	p, err := l.proposal(id)
	if err != nil {
		return nil, Outcome{}, err
	}
	if !p.Sponsored {
		return nil, Outcome{}, domain.ErrNotSponsored
	}
	if p.Processed {
		return nil, Outcome{}, domain.ErrAlreadyProcessed
	}
	now := l.clock.Now()
	if now.Before(p.GracePeriodEndsAt) {
		return nil, Outcome{}, domain.Errorf(domain.ErrTooEarly, "grace period ends at %s", p.GracePeriodEndsAt.UTC())
	}
	if idx := l.queueIndex(id); idx > 0 {
		prev := l.state.Proposals[l.state.Queue[idx-1]]
		if !prev.Processed {
			return nil, Outcome{}, domain.Errorf(domain.ErrOutOfOrder, "proposal %d is still pending", prev.ID)
		}
	}

	outcome := DecideOutcome(p, l.params, l.members.TotalSharesAndLoot(), l.BankBalance(p.PaymentToken))
	transfers := l.settlement(p, outcome.Passed, processor)
	if err := l.verifyTransfers(transfers); err != nil {
		return nil, Outcome{}, err
	}

	if outcome.Passed {
		if err := l.members.Admit(p.Applicant, p.SharesRequested, p.LootRequested, now); err != nil {
			return nil, Outcome{}, err
		}
		l.credit(p.TributeToken, p.TributeOffered)
		l.debit(p.PaymentToken, p.PaymentRequested)
	}
	for _, t := range transfers {
		if err := l.tokens.Transfer(t.token, l.guild, t.to, t.amount); err != nil {
			return nil, Outcome{}, fmt.Errorf("settling proposal %d: %w", id, err)
		}
	}

	p.Processed = true
	p.DidPass = outcome.Passed
	p.ProcessedAt = now
	p.Processor = processor
	return p, outcome, nil
}

// Cancel withdraws an unsponsored proposal and refunds its tribute
func (l *ProposalLedger) Cancel(id uint64, caller common.Address) error {
	p, err := l.proposal(id)
	if err != nil {
		return err
	}
	if p.Cancelled {
		return domain.ErrCancelled
	}
	if p.Sponsored {
		return domain.ErrAlreadySponsored
	}
	if caller != p.Proposer {
		return domain.ErrNotProposer
	}
	if p.TributeOffered.Sign() > 0 {
		if err := l.tokens.Transfer(p.TributeToken, l.guild, p.Proposer, p.TributeOffered); err != nil {
			return fmt.Errorf("refunding tribute: %w", err)
		}
	}
	p.Cancelled = true
	return nil
}

// StatusOf derives the current status of a proposal
func (l *ProposalLedger) StatusOf(id uint64) (models.ProposalStatus, error) {
	p, err := l.proposal(id)
	if err != nil {
		return "", err
	}
	return p.StatusAt(l.clock.Now()), nil
}

// Proposal returns a copy of the proposal
func (l *ProposalLedger) Proposal(id uint64) (models.Proposal, error) {
	p, err := l.proposal(id)
	if err != nil {
		return models.Proposal{}, err
	}
	return *p, nil
}

// Proposals returns copies of all proposals in id order
func (l *ProposalLedger) Proposals() []models.Proposal {
	out := make([]models.Proposal, len(l.state.Proposals))
	for i, p := range l.state.Proposals {
		out[i] = *p
	}
	return out
}

// Queue returns the ids of sponsored proposals in voting order
func (l *ProposalLedger) Queue() []uint64 {
	return append([]uint64(nil), l.state.Queue...)
}

// Votes returns the ballots cast on a proposal ordered by voter
func (l *ProposalLedger) Votes(id uint64) []models.Vote {
	ballots := l.state.Votes[id]
	out := make([]models.Vote, 0, len(ballots))
	for _, v := range ballots {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Voter.Cmp(out[j].Voter) < 0
	})
	return out
}

// BankBalance returns the guild bank balance of a token
func (l *ProposalLedger) BankBalance(token common.Address) *big.Int {
	if b, ok := l.state.Bank[token]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// recordVote is the single writer of ballots and tallies
func (l *ProposalLedger) recordVote(p *models.Proposal, vote *models.Vote) {
	ballots, ok := l.state.Votes[p.ID]
	if !ok {
		ballots = make(map[common.Address]*models.Vote)
		l.state.Votes[p.ID] = ballots
	}
	ballots[vote.Voter] = vote

	switch vote.Choice {
	case models.VoteYes:
		p.YesVotes += vote.Weight
		if total := l.members.TotalSharesAndLoot(); total > p.MaxTotalSharesAndLootAtYesVote {
			p.MaxTotalSharesAndLootAtYesVote = total
		}
		l.members.recordYesVote(vote.Voter, p.ID)
	case models.VoteNo:
		p.NoVotes += vote.Weight
	}
}

func (l *ProposalLedger) hasVoted(id uint64, voter common.Address) bool {
	_, ok := l.state.Votes[id][voter]
	return ok
}

func (l *ProposalLedger) proposal(id uint64) (*models.Proposal, error) {
	if id >= uint64(len(l.state.Proposals)) {
		return nil, domain.Errorf(domain.ErrProposalNotFound, "id %d", id)
	}
	return l.state.Proposals[id], nil
}

func (l *ProposalLedger) queueIndex(id uint64) int {
	for i, queued := range l.state.Queue {
		if queued == id {
			return i
		}
	}
	return -1
}

type transfer struct {
	token  common.Address
	to     common.Address
	amount *big.Int
}

// settlement lists the outgoing transfers processing a proposal causes
func (l *ProposalLedger) settlement(p *models.Proposal, passed bool, processor common.Address) []transfer {
	var out []transfer
	if passed {
		if p.PaymentRequested.Sign() > 0 {
			out = append(out, transfer{p.PaymentToken, p.Applicant, p.PaymentRequested})
		}
	} else if p.TributeOffered.Sign() > 0 {
		out = append(out, transfer{p.TributeToken, p.Proposer, p.TributeOffered})
	}

	deposit := orZero(p.Deposit)
	reward := orZero(l.params.ProcessingReward)
	if reward.Cmp(deposit) > 0 {
		reward = deposit
	}
	if reward.Sign() > 0 {
		out = append(out, transfer{l.params.DepositToken(), processor, reward})
	}
	if rest := new(big.Int).Sub(deposit, reward); rest.Sign() > 0 {
		out = append(out, transfer{l.params.DepositToken(), p.Sponsor, rest})
	}
	return out
}

// verifyTransfers checks the guild holds enough of every token before any moves
func (l *ProposalLedger) verifyTransfers(transfers []transfer) error {
	need := make(map[common.Address]*big.Int)
	for _, t := range transfers {
		if _, ok := need[t.token]; !ok {
			need[t.token] = new(big.Int)
		}
		need[t.token].Add(need[t.token], t.amount)
	}
	for token, amount := range need {
		held, err := l.tokens.BalanceOf(token, l.guild)
		if err != nil {
			return fmt.Errorf("reading guild balance: %w", err)
		}
		if held.Cmp(amount) < 0 {
			return domain.Errorf(domain.ErrInsufficient, "guild holds %s of %s, needs %s", held, token.Hex(), amount)
		}
	}
	return nil
}

func (l *ProposalLedger) credit(token common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	bal, ok := l.state.Bank[token]
	if !ok {
		bal = new(big.Int)
		l.state.Bank[token] = bal
	}
	bal.Add(bal, amount)
}

func (l *ProposalLedger) debit(token common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	if bal, ok := l.state.Bank[token]; ok {
		bal.Sub(bal, amount)
	}
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func copyAction(a *models.ActionPayload) *models.ActionPayload {
	if a == nil {
		return nil
	}
	return &models.ActionPayload{
		Target: a.Target,
		Value:  new(big.Int).Set(orZero(a.Value)),
		Data:   append([]byte(nil), a.Data...),
	}
}
