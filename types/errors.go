package types

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound is returned when a transaction or asset is not yet indexed
	ErrNotFound = errors.New("not found")

	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New("operation timed out")

	// ErrPoolRejected is returned when the node's pending pool rejects a transaction
	ErrPoolRejected = errors.New("rejected by transaction pool")

	// ErrSessionClosed is returned when a wallet session is used after teardown
	ErrSessionClosed = errors.New("wallet session closed")
)
