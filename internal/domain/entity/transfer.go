package entity

import "github.com/shopspring/decimal"

// PendingTransfer holds a transfer proposal produced by the chat classifier
// and awaiting explicit user confirmation. At most one exists at a time; a
// newly classified transfer overwrites any unconfirmed one.
type PendingTransfer struct {
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Prompt    string          `json:"prompt"`
}
