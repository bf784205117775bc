package entity

// WalletSession represents the single connected wallet for this gateway process.
// A zero-value session means "disconnected"; a new connect overwrites any
// previous session.
type WalletSession struct {
	Address   string `json:"address"`
	Connected bool   `json:"connected"`
}

// WalletAddress is one address entry returned by the wallet agent on connect.
type WalletAddress struct {
	Symbol  string `json:"symbol"`
	Address string `json:"address"`
}

// IsStacks reports whether the entry belongs to the Stacks chain, either by
// its declared symbol or by the address prefix convention.
func (a WalletAddress) IsStacks() bool {
	return a.Symbol == "STX" || (len(a.Address) > 0 && a.Address[0] == 'S')
}

// ShortAddress renders an address as "SP12345...ABCD" for display. Addresses
// shorter than the cut points are returned unchanged.
func ShortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:8] + "..." + address[len(address)-6:]
}
