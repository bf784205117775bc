package entity

// AccountResponse is the subset of GET /v2/accounts/{address}?proof=0 that
// the gateway consumes. The node returns the balance as a decimal integer
// string of micro-STX (sometimes hex-prefixed on older nodes; the client
// normalizes).
type AccountResponse struct {
	Balance string `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}
