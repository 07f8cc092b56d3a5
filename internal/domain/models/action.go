package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ActionStatus represents the execution status of a delegated action
type ActionStatus string

const (
	ActionStatusPending  ActionStatus = "pending"
	ActionStatusExecuted ActionStatus = "executed"
	ActionStatusFailed   ActionStatus = "failed"
)

// DelegatedAction is a call queued by the minion, keyed by its carrying proposal
type DelegatedAction struct {
	ProposalID  uint64         `json:"proposalId"`
	Proposer    common.Address `json:"proposer"`
	Target      common.Address `json:"target"`
	Value       *big.Int       `json:"value"`
	Data        hexutil.Bytes  `json:"data"`
	Description string         `json:"description"`
	Status      ActionStatus   `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`

	// Execution details (after execution)
	ExecutedAt time.Time     `json:"executedAt"`
	ReturnData hexutil.Bytes `json:"returnData,omitempty"`
	Failure    string        `json:"failure,omitempty"`
}
