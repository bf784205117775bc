package port

import "context"

// ChainClient reads account state from a Stacks node. Implementations are
// read-only; nothing the gateway does mutates chain state directly.
type ChainClient interface {
	// GetAccountBalance returns the micro-STX balance of an address.
	GetAccountBalance(ctx context.Context, address string) (uint64, error)
}
