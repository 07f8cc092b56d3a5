package governance

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
)

// Withdrawal is one token paid out by a ragequit
type Withdrawal struct {
	Token  common.Address
	Amount *big.Int
}

// Ragequit burns a member's shares and loot for a pro-rata slice of the guild
// bank. It is blocked while the member's highest yes vote is unprocessed.
func (l *ProposalLedger) Ragequit(member common.Address, shares, loot uint64) ([]Withdrawal, error) {
	m, ok := l.members.Member(member)
	if !ok {
		return nil, domain.ErrNotMember
	}
	if shares == 0 && loot == 0 {
		return nil, domain.Errorf(domain.ErrInvalidAmount, "nothing to burn")
	}
	if m.Shares < shares || m.Loot < loot {
		return nil, domain.Errorf(domain.ErrInsufficient, "member holds %d shares and %d loot", m.Shares, m.Loot)
	}
	if m.HighestYesVote != nil {
		p, err := l.proposal(*m.HighestYesVote)
		if err != nil {
			return nil, err
		}
		if !p.Processed {
			return nil, domain.Errorf(domain.ErrCannotRagequit, "proposal %d", p.ID)
		}
	}

	total := new(big.Int).SetUint64(l.members.TotalSharesAndLoot())
	burned := new(big.Int).SetUint64(shares + loot)

	var out []Withdrawal
	for _, token := range l.params.ApprovedTokens {
		bal := l.BankBalance(token)
		if bal.Sign() == 0 {
			continue
		}
		amount := new(big.Int).Mul(bal, burned)
		amount.Quo(amount, total)
		if amount.Sign() > 0 {
			out = append(out, Withdrawal{Token: token, Amount: amount})
		}
	}

	transfers := make([]transfer, len(out))
	for i, w := range out {
		transfers[i] = transfer{token: w.Token, to: member, amount: w.Amount}
	}
	if err := l.verifyTransfers(transfers); err != nil {
		return nil, err
	}

	if err := l.members.Burn(member, shares, loot); err != nil {
		return nil, err
	}
	for _, t := range transfers {
		l.debit(t.token, t.amount)
		if err := l.tokens.Transfer(t.token, l.guild, t.to, t.amount); err != nil {
			return nil, fmt.Errorf("paying out ragequit: %w", err)
		}
	}
	return out, nil
}
