package entity

import "errors"

// Failure taxonomy for the orchestration core. Services return these as
// wrapped sentinels so callers can branch with errors.Is; user-facing text is
// produced only at the API boundary.
var (
	// ErrConnectionRejected: the wallet agent refused the connect prompt.
	ErrConnectionRejected = errors.New("wallet connection rejected")

	// ErrNetworkUnavailable: a node or backend read could not be completed.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrTransactionCancelled: the user declined the approval prompt.
	ErrTransactionCancelled = errors.New("transaction cancelled by user")

	// ErrSubmissionFailed: the call failed before or at the wallet agent.
	ErrSubmissionFailed = errors.New("transaction submission failed")

	// ErrClassificationUnavailable: the chat backend is unreachable.
	ErrClassificationUnavailable = errors.New("classification unavailable")

	// ErrNotConnected: the operation requires a connected wallet session.
	ErrNotConnected = errors.New("wallet not connected")

	// ErrTransactionInFlight: another call is still awaiting approval.
	ErrTransactionInFlight = errors.New("transaction already in flight")

	// ErrNoPendingTransfer: confirm was called with no parked proposal.
	ErrNoPendingTransfer = errors.New("no pending transfer")

	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrInvalidAmount    = errors.New("invalid amount")
)
