package port

import (
	"context"

	"github.com/shopspring/decimal"

	"wallet_companion/internal/domain/entity"
)

// SessionService owns the single wallet session and its balance.
type SessionService interface {
	// Connect prompts the wallet agent and stores the first Stacks address it
	// returns. A balance fetch is kicked off as a side effect; its failure
	// does not fail the connect.
	Connect(ctx context.Context) (entity.WalletSession, error)

	// Disconnect clears the session and balance unconditionally.
	Disconnect()

	// Session returns the current session snapshot.
	Session() entity.WalletSession

	// Balance returns the last known balance, or nil when none was fetched.
	Balance() *entity.Balance

	// RefreshBalance re-reads the connected address's balance, served from a
	// short-lived cache unless bypassCache is set. On failure the prior
	// balance is left untouched.
	RefreshBalance(ctx context.Context, bypassCache bool) (entity.Balance, error)
}

// RefetchTarget names the dependent state the orchestrator re-fetches after
// a submit, once the fixed convergence delay elapsed.
type RefetchTarget string

const (
	RefetchNone    RefetchTarget = "none"
	RefetchCounter RefetchTarget = "counter"
	RefetchBalance RefetchTarget = "balance"
)

// Orchestrator drives the single transaction slot through
// idle → awaiting_approval → submitted | cancelled | failed.
type Orchestrator interface {
	// Execute runs one contract call through the wallet agent. It returns
	// entity.ErrNotConnected before entering awaiting_approval when no
	// session exists, and entity.ErrTransactionInFlight while a previous
	// call is still awaiting approval. The returned outcome is terminal.
	Execute(ctx context.Context, req entity.TransactionRequest, refetch RefetchTarget) (entity.TransactionOutcome, error)

	// Outcome returns the current slot snapshot.
	Outcome() entity.TransactionOutcome
}

// CounterService reads the counter contract value.
type CounterService interface {
	// Count returns the counter value, served from a short-lived cache
	// unless bypassCache is set.
	Count(ctx context.Context, bypassCache bool) (int64, error)
}

// TransferService owns the pending-transfer slot and both transfer paths.
type TransferService interface {
	// Propose parks a transfer proposal awaiting confirmation, overwriting
	// any unconfirmed one.
	Propose(transfer entity.PendingTransfer)

	// Pending returns the parked proposal, or nil.
	Pending() *entity.PendingTransfer

	// Confirm executes the parked proposal via the backend-prepared call
	// descriptor. It requires a non-nil proposal and a connected session and
	// performs no network call when either is missing. The proposal is
	// cleared on submit and on cancel, kept on failure.
	Confirm(ctx context.Context) (entity.ChatReply, error)

	// Cancel clears the parked proposal unconditionally. No network.
	Cancel()

	// Transfer is the direct, form-based path: validates recipient and
	// amount, builds the transfer-stx call locally and executes it.
	Transfer(ctx context.Context, recipient string, amount decimal.Decimal) (entity.TransactionOutcome, error)
}

// ChatService is the natural-language bridge over the other services.
type ChatService interface {
	// SendMessage classifies the text and dispatches on the intent. It never
	// returns an error: transport failures degrade to a fallback reply.
	SendMessage(ctx context.Context, text string) entity.ChatReply
}
