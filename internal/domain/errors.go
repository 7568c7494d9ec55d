package domain

import (
	"errors"
	"fmt"
)

// Engine-level sentinel errors.
var (
	// ErrNoTransactions names an empty input transaction set. Engine.Score
	// does not return it: it reports an empty set as an
	// InsufficientHistoryError with HistoryDays 0.
	ErrNoTransactions = errors.New("no transactions supplied")
	// ErrComputation signals an internal arithmetic or invariant violation.
	// Engine.Score does not return it; the score handler and the cron
	// dispatcher write a failure audit row only for InsufficientHistoryError.
	ErrComputation = errors.New("score computation error")
	// ErrAuditNotFound is returned when no audit row exists for a user.
	ErrAuditNotFound = errors.New("no audit row found")
	// ErrServiceTokenNotFound is returned when a service token is unknown,
	// expired, or revoked.
	ErrServiceTokenNotFound = errors.New("service token not found")
	// ErrWorkspaceNotFound is returned when an Auth0 identity has no
	// associated workspace.
	ErrWorkspaceNotFound = errors.New("workspace not found")
)

// InsufficientHistoryError is the typed outcome surfaced when
// history_days < 90 (spec.md §4.5, §6). No metrics or score are computed.
type InsufficientHistoryError struct {
	HistoryDays int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: %d days observed, need at least 90", e.HistoryDays)
}

// MalformedTransactionError wraps a single skipped transaction row. It is
// logged by the tagger and never aborts the batch.
type MalformedTransactionError struct {
	TransactionID string
	Reason        string
}

func (e *MalformedTransactionError) Error() string {
	return fmt.Sprintf("malformed transaction %q: %s", e.TransactionID, e.Reason)
}
