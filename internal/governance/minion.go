package governance

import (
	"context"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// Minion executes arbitrary calls for the guild once a proposal approves them.
// It keeps only proposal ids and polls the ledger for their status.
type Minion struct {
	state  *models.MinionState
	ledger *ProposalLedger
	calls  CallSubstrate
	clock  Clock
}

// NewMinion wraps the given minion state
func NewMinion(state *models.MinionState, ledger *ProposalLedger, calls CallSubstrate, clock Clock) *Minion {
	if state.Actions == nil {
		state.Actions = make(map[uint64]*models.DelegatedAction)
	}
	return &Minion{state: state, ledger: ledger, calls: calls, clock: clock}
}

// Address returns the minion's own address
func (m *Minion) Address() common.Address {
	return m.state.Address
}

// ProposeAction submits a proposal carrying a call for the minion to make
func (m *Minion) ProposeAction(proposer, target common.Address, value *big.Int, data []byte, description string) (uint64, error) {
	if target == (common.Address{}) {
		return 0, domain.Errorf(domain.ErrZeroAddress, "action target")
	}
	value = new(big.Int).Set(orZero(value))
	if value.Sign() < 0 {
		return 0, domain.ErrInvalidAmount
	}

	depositToken := m.ledger.Params().DepositToken()
	id, err := m.ledger.Submit(SubmitParams{
		Proposer:     m.state.Address,
		Applicant:    m.state.Address,
		TributeToken: depositToken,
		PaymentToken: depositToken,
		Action: &models.ActionPayload{
			Target: target,
			Value:  value,
			Data:   data,
		},
		Description: description,
	})
	if err != nil {
		return 0, err
	}

	m.state.Actions[id] = &models.DelegatedAction{
		ProposalID:  id,
		Proposer:    proposer,
		Target:      target,
		Value:       value,
		Data:        append([]byte(nil), data...),
		Description: description,
		Status:      models.ActionStatusPending,
		CreatedAt:   m.clock.Now(),
	}
	return id, nil
}

// ExecuteAction makes the stored call of a passed proposal, at most once.
// The status flips to executed before the call so a reentrant attempt is
// rejected. A failed call leaves the action failed for good.
func (m *Minion) ExecuteAction(ctx context.Context, id uint64) (models.DelegatedAction, error) {
	action, ok := m.state.Actions[id]
	if !ok {
		return models.DelegatedAction{}, domain.Errorf(domain.ErrNotReady, "no action queued for proposal %d", id)
	}
	p, err := m.ledger.proposal(id)
	if err != nil {
		return models.DelegatedAction{}, err
	}
	if status := p.StatusAt(m.clock.Now()); status != models.ProposalStatusPassed {
		return models.DelegatedAction{}, domain.Errorf(domain.ErrNotReady, "proposal %d is %s", id, status)
	}
	if !p.HasAction() {
		return models.DelegatedAction{}, domain.Errorf(domain.ErrNotReady, "proposal %d carries no action", id)
	}
	if action.Status != models.ActionStatusPending {
		return models.DelegatedAction{}, domain.Errorf(domain.ErrAlreadyExecuted, "action %d is %s", id, action.Status)
	}

	action.Status = models.ActionStatusExecuted
	action.ExecutedAt = m.clock.Now()

	ret, err := m.calls.Call(ctx, m.state.Address, action.Target, action.Value, action.Data)
	if err != nil {
		action.Status = models.ActionStatusFailed
		action.Failure = err.Error()
		return *action, &domain.ActionError{ProposalID: id, Cause: err}
	}
	action.ReturnData = ret
	return *action, nil
}

// Action returns a copy of the action queued under a proposal id
func (m *Minion) Action(id uint64) (models.DelegatedAction, error) {
	action, ok := m.state.Actions[id]
	if !ok {
		return models.DelegatedAction{}, domain.Errorf(domain.ErrActionNotFound, "proposal %d", id)
	}
	return *action, nil
}

// Actions returns copies of all queued actions ordered by proposal id
func (m *Minion) Actions() []models.DelegatedAction {
	out := make([]models.DelegatedAction, 0, len(m.state.Actions))
	for _, a := range m.state.Actions {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProposalID < out[j].ProposalID })
	return out
}
