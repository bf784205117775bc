package entity

// Intent is the closed set of actions the chat classifier can recommend.
// Unknown tags from the backend are mapped to IntentNone before dispatch, so
// every switch over Intent can be exhaustive.
type Intent string

const (
	IntentRead      Intent = "read"
	IntentIncrement Intent = "increment"
	IntentTransfer  Intent = "transfer"
	IntentBalance   Intent = "balance"
	IntentNone      Intent = "none"
)

// ParseIntent maps a backend action tag to an Intent, defaulting to
// IntentNone for anything unrecognized.
func ParseIntent(tag string) Intent {
	switch Intent(tag) {
	case IntentRead, IntentIncrement, IntentTransfer, IntentBalance:
		return Intent(tag)
	default:
		return IntentNone
	}
}

// Classification is the structured result of intent classification for one
// chat message. Recipient, Amount and Address are optional parameters that
// accompany the transfer and balance intents.
type Classification struct {
	Intent    Intent `json:"intent"`
	Message   string `json:"message"`
	Recipient string `json:"recipient,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Address   string `json:"address,omitempty"`
}

// ChatReply is what the bridge returns to the caller after dispatching a
// classified message. AwaitingConfirmation is set when a transfer proposal
// was parked and needs an explicit confirm.
type ChatReply struct {
	Intent               Intent `json:"intent"`
	Message              string `json:"message"`
	AwaitingConfirmation bool   `json:"awaitingConfirmation,omitempty"`
}
