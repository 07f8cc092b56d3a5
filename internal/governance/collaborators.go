// Package governance implements the guild core: membership, the proposal
// ledger and its voting engine, the minion that executes approved calls and
// the authorization predicate consulted by gated contracts.
//
// Nothing here runs in the background. Every timed transition is evaluated
// against Clock.Now at call time, and callers are expected to serialise
// top-level operations the way the execution substrate would.
package governance

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Clock supplies the current time of the execution substrate
type Clock interface {
	Now() time.Time
}

// TokenBank is the token collaborator used for tribute, deposits and payments
type TokenBank interface {
	BalanceOf(token, owner common.Address) (*big.Int, error)
	TransferFrom(token, spender, from, to common.Address, amount *big.Int) error
	Transfer(token, from, to common.Address, amount *big.Int) error
	Approve(token, owner, spender common.Address, amount *big.Int) error
}

// CallSubstrate performs delegated calls on behalf of the minion
type CallSubstrate interface {
	Call(ctx context.Context, caller, target common.Address, value *big.Int, data []byte) ([]byte, error)
}
