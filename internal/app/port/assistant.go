package port

import (
	"context"

	"github.com/shopspring/decimal"

	"wallet_companion/internal/domain/entity"
	wire "wallet_companion/internal/entity"
)

// AssistantClient talks to the chat backend: intent classification plus the
// contract-adjacent helper endpoints it exposes.
type AssistantClient interface {
	// Classify maps free text to an intent plus optional parameters.
	Classify(ctx context.Context, message string) (entity.Classification, error)

	// CounterValue reads the current value of the counter contract through
	// the backend's read-only endpoint.
	CounterValue(ctx context.Context) (int64, error)

	// PrepareTransfer asks the backend which contract entry point serves a
	// transfer of the given STX amount. A backend error body is returned as
	// an error.
	PrepareTransfer(ctx context.Context, sender, recipient string, amount decimal.Decimal) (wire.PrepareTransferResponse, error)

	// AddressBalance looks up the balance of an arbitrary address through the
	// backend; the response message is rendered to the user verbatim.
	AddressBalance(ctx context.Context, address string) (wire.BalanceResponse, error)

	// TransactionStatus enriches a submitted transaction with its current
	// status and explorer link.
	TransactionStatus(ctx context.Context, txID string) (wire.TxStatusResponse, error)
}
