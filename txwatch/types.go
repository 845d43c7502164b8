package txwatch

import (
	"context"
	"time"
)

// State classifies the outcome of a confirmation check.
type State int

const (
	// StatePending means the transaction is known to the pool but not yet in a round.
	StatePending State = iota
	// StateNotFound means neither read path has seen the transaction yet.
	StateNotFound
	// StateConfirmed means the transaction landed in a round.
	StateConfirmed
	// StateTimedOut means the attempt ceiling was reached without a confirmation.
	StateTimedOut
	// StateError means both read paths reported structured failures, or the
	// pool rejected the transaction.
	StateError
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateNotFound:
		return "not_found"
	case StateConfirmed:
		return "confirmed"
	case StateTimedOut:
		return "timed_out"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the result of one confirmation check. The most recent value is
// the one a presenter should show.
type Status struct {
	TxID     string
	State    State
	Round    uint64
	AssetID  uint64 // non-zero only when the transaction created an asset
	Message  string
	Attempts int
	Links    []string // explorer URLs, populated on terminal states

	// PoolRejected marks an error that came from the node's pending pool
	// rather than a read-path failure; pool rejections are never retried.
	PoolRejected bool
}

// Terminal reports whether no further polling will change the status.
func (s Status) Terminal() bool {
	return s.State == StateConfirmed || s.State == StateTimedOut || s.State == StateError
}

// PendingResult is the normalized fast-path record.
type PendingResult struct {
	ConfirmedRound uint64
	AssetID        uint64
	PoolError      string
}

// TxRecord is the normalized slow-path record.
type TxRecord struct {
	ConfirmedRound uint64
	AssetID        uint64
}

// NodeReader is the fast read path: the node's pending-transaction lookup.
// Implementations return types.ErrNotFound when the pool has no entry.
type NodeReader interface {
	PendingTransaction(ctx context.Context, txid string) (PendingResult, error)
}

// IndexReader is the slow read path: the historical index. It lags the node
// but is authoritative once populated.
type IndexReader interface {
	LookupTransaction(ctx context.Context, txid string) (TxRecord, error)
	LookupCreatedAsset(ctx context.Context, txid string) (uint64, error)
}

// LinkFn builds explorer URLs for a transaction id.
type LinkFn func(txid string) []string

// Backoff controls polling cadence.
type Backoff interface {
	Next(attempt int) time.Duration
}
