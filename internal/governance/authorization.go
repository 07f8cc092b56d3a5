package governance

import "github.com/ethereum/go-ethereum/common"

// Authorizer is the membership-gated access predicate for guild contracts
type Authorizer struct {
	minion  common.Address
	members *MembershipRegistry
}

// NewAuthorizer creates the predicate for a guild and its minion
func NewAuthorizer(minion common.Address, members *MembershipRegistry) *Authorizer {
	return &Authorizer{minion: minion, members: members}
}

// IsAuthorized reports whether addr is the minion or an active member
func (a *Authorizer) IsAuthorized(addr common.Address) bool {
	return addr == a.minion || a.members.IsMember(addr)
}

// Minion returns the minion address the predicate trusts
func (a *Authorizer) Minion() common.Address {
	return a.minion
}
