package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// VoteChoice mirrors the uint8 vote encoding of the guild contract
type VoteChoice uint8

const (
	VoteNull VoteChoice = iota
	VoteYes
	VoteNo
)

func (c VoteChoice) String() string {
	switch c {
	case VoteYes:
		return "yes"
	case VoteNo:
		return "no"
	default:
		return "null"
	}
}

// Valid reports whether the choice is yes or no
func (c VoteChoice) Valid() bool {
	return c == VoteYes || c == VoteNo
}

// Vote is an immutable ballot of one member on one proposal
type Vote struct {
	ProposalID uint64         `json:"proposalId"`
	Voter      common.Address `json:"voter"`
	Choice     VoteChoice     `json:"choice"`
	Weight     uint64         `json:"weight"`
	CastAt     time.Time      `json:"castAt"`
}
