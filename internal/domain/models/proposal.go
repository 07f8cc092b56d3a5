package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ProposalStatus represents the lifecycle status of a guild proposal
type ProposalStatus string

const (
	ProposalStatusSubmitted ProposalStatus = "submitted"
	ProposalStatusSponsored ProposalStatus = "sponsored" // queued, voting window not open yet
	ProposalStatusVoting    ProposalStatus = "voting"
	ProposalStatusGrace     ProposalStatus = "grace"
	ProposalStatusReady     ProposalStatus = "ready" // grace elapsed, awaiting processing
	ProposalStatusPassed    ProposalStatus = "passed"
	ProposalStatusFailed    ProposalStatus = "failed"
	ProposalStatusCancelled ProposalStatus = "cancelled"
)

// IsProcessed reports whether the status is a terminal Processed(passed|failed)
func (s ProposalStatus) IsProcessed() bool {
	return s == ProposalStatusPassed || s == ProposalStatusFailed
}

// ActionPayload is the call a proposal asks the minion to make
type ActionPayload struct {
	Target common.Address `json:"target"`
	Value  *big.Int       `json:"value"`
	Data   hexutil.Bytes  `json:"data"`
}

// Proposal represents a guild proposal record
type Proposal struct {
	// Identification
	ID          uint64         `json:"id"`
	Proposer    common.Address `json:"proposer"`
	Applicant   common.Address `json:"applicant"`
	Sponsor     common.Address `json:"sponsor,omitempty"`
	Description string         `json:"description"`

	// Requested changes
	SharesRequested  uint64         `json:"sharesRequested"`
	LootRequested    uint64         `json:"lootRequested"`
	TributeOffered   *big.Int       `json:"tributeOffered"`
	TributeToken     common.Address `json:"tributeToken"`
	PaymentRequested *big.Int       `json:"paymentRequested"`
	PaymentToken     common.Address `json:"paymentToken"`
	Action           *ActionPayload `json:"action,omitempty"`

	// Lifecycle flags
	Sponsored bool `json:"sponsored"`
	Processed bool `json:"processed"`
	DidPass   bool `json:"didPass"`
	Cancelled bool `json:"cancelled"`

	// Timestamps, zero until the matching transition happens
	SubmittedAt       time.Time `json:"submittedAt"`
	SponsoredAt       time.Time `json:"sponsoredAt"`
	VotingStartsAt    time.Time `json:"votingStartsAt"`
	VotingEndsAt      time.Time `json:"votingEndsAt"`
	GracePeriodEndsAt time.Time `json:"gracePeriodEndsAt"`
	ProcessedAt       time.Time `json:"processedAt"`

	// Sponsorship escrow
	Deposit   *big.Int       `json:"deposit,omitempty"`
	Processor common.Address `json:"processor,omitempty"`

	// Voting weights snapshotted at sponsorship
	Weights              map[common.Address]uint64 `json:"weights,omitempty"`
	TotalSharesAtSponsor uint64                    `json:"totalSharesAtSponsor"`

	// Tallies, written only by the proposal ledger
	YesVotes                       uint64 `json:"yesVotes"`
	NoVotes                        uint64 `json:"noVotes"`
	MaxTotalSharesAndLootAtYesVote uint64 `json:"maxTotalSharesAndLootAtYesVote"`
}

// StatusAt derives the lifecycle status from the stored flags and timestamps
func (p *Proposal) StatusAt(now time.Time) ProposalStatus {
	switch {
	case p.Cancelled:
		return ProposalStatusCancelled
	case p.Processed && p.DidPass:
		return ProposalStatusPassed
	case p.Processed:
		return ProposalStatusFailed
	case !p.Sponsored:
		return ProposalStatusSubmitted
	case now.Before(p.VotingStartsAt):
		return ProposalStatusSponsored
	case now.Before(p.VotingEndsAt):
		return ProposalStatusVoting
	case now.Before(p.GracePeriodEndsAt):
		return ProposalStatusGrace
	default:
		return ProposalStatusReady
	}
}

// VotingOpen reports whether now lies in [VotingStartsAt, VotingEndsAt)
func (p *Proposal) VotingOpen(now time.Time) bool {
	return p.Sponsored && !now.Before(p.VotingStartsAt) && now.Before(p.VotingEndsAt)
}

// HasAction reports whether the proposal carries an executable payload
func (p *Proposal) HasAction() bool {
	return p.Action != nil && p.Action.Target != (common.Address{})
}
