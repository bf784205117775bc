package entity

// EventType tags a state-change event pushed to stream subscribers.
type EventType string

const (
	EventSession     EventType = "session"
	EventBalance     EventType = "balance"
	EventCounter     EventType = "counter"
	EventTransaction EventType = "transaction"
	EventChat        EventType = "chat"
)

// Event is one state-change notification. Data is the entity snapshot that
// changed (WalletSession, Balance, TransactionOutcome, ...).
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}
