package port

import (
	"context"

	"wallet_companion/internal/domain/entity"
)

// WalletAgent is the opaque wallet capability provider. Both calls surface a
// prompt to the user and block until the user acts or the context expires.
type WalletAgent interface {
	// Connect asks the wallet to expose its addresses. A user rejection is
	// reported as entity.ErrConnectionRejected.
	Connect(ctx context.Context) ([]entity.WalletAddress, error)

	// RequestContractCall asks the wallet to approve, sign and broadcast the
	// call. It returns the transaction id on approval; a user cancellation is
	// reported as entity.ErrTransactionCancelled.
	RequestContractCall(ctx context.Context, req entity.TransactionRequest) (string, error)
}
