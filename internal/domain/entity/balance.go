package entity

// Balance represents the STX balance of a wallet as read from the node.
// MicroSTX is the authoritative value; Display is derived from it with
// integer-safe division and is always formatted to 6 fractional digits.
type Balance struct {
	Address  string `json:"address"`
	MicroSTX uint64 `json:"microStx"`
	Display  string `json:"display"`
}
