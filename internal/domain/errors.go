package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error by the rule it violated
type Kind string

const (
	KindInvalidInput         Kind = "invalid input"
	KindStateViolation       Kind = "state violation"
	KindTimingViolation      Kind = "timing violation"
	KindAuthorizationFailure Kind = "authorization failure"
	KindOrderingViolation    Kind = "ordering violation"
	KindExternalCallFailure  Kind = "external call failure"
	KindNotFound             Kind = "not found"
)

// Error is a sentinel error tagged with its kind
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Sentinel errors for guild operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = newError(KindNotFound, "not found")

	// ErrProposalNotFound is returned for an unknown proposal id
	ErrProposalNotFound = newError(KindNotFound, "proposal not found")

	// ErrActionNotFound is returned when the minion holds no action for a proposal id
	ErrActionNotFound = newError(KindNotFound, "action not found")

	// ErrGuildNotSummoned is returned when the world holds no guild yet
	ErrGuildNotSummoned = newError(KindNotFound, "guild not summoned")

	ErrInvalidInput   = newError(KindInvalidInput, "invalid input")
	ErrInvalidToken   = newError(KindInvalidInput, "token is not whitelisted")
	ErrZeroAddress    = newError(KindInvalidInput, "zero address")
	ErrInvalidAddress = newError(KindInvalidInput, "invalid address")
	ErrInvalidAmount  = newError(KindInvalidInput, "invalid amount")
	ErrInvalidChoice  = newError(KindInvalidInput, "vote must be yes or no")
	ErrShareLimit     = newError(KindInvalidInput, "too many shares requested")
	ErrInsufficient   = newError(KindInvalidInput, "insufficient balance or allowance")

	ErrAlreadySponsored = newError(KindStateViolation, "proposal already sponsored")
	ErrNotSponsored     = newError(KindStateViolation, "proposal not sponsored")
	ErrAlreadyProcessed = newError(KindStateViolation, "proposal already processed")
	ErrCancelled        = newError(KindStateViolation, "proposal cancelled")
	ErrDuplicateVote    = newError(KindStateViolation, "member has already voted")
	ErrAlreadyExecuted  = newError(KindStateViolation, "action already executed")
	ErrNotReady         = newError(KindStateViolation, "action not ready for execution")
	ErrCannotRagequit   = newError(KindStateViolation, "cannot ragequit until highest yes vote is processed")
	ErrAlreadySummoned  = newError(KindStateViolation, "guild already summoned")

	ErrVotingClosed = newError(KindTimingViolation, "voting period is not open")
	ErrTooEarly     = newError(KindTimingViolation, "proposal is not ready to be processed")

	ErrNotMember     = newError(KindAuthorizationFailure, "not a member")
	ErrNotProposer   = newError(KindAuthorizationFailure, "caller is not the proposer")
	ErrNotAuthorized = newError(KindAuthorizationFailure, "caller is not the minion or not called for guild member")

	ErrQueueOrdering = newError(KindOrderingViolation, "voting start would break queue order")
	ErrOutOfOrder    = newError(KindOrderingViolation, "previous proposal must be processed")

	ErrActionExecutionFailed = newError(KindExternalCallFailure, "action execution failed")
)

// KindOf returns the kind of the first domain error in err's chain, or the
// empty kind when there is none
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// Errorf wraps a sentinel with formatted detail, keeping errors.Is working
func Errorf(sentinel *Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// ActionError reports a failed delegated call
type ActionError struct {
	ProposalID uint64
	Cause      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s for proposal %d: %v", ErrActionExecutionFailed.Msg, e.ProposalID, e.Cause)
}

func (e *ActionError) Unwrap() []error {
	return []error{ErrActionExecutionFailed, e.Cause}
}
