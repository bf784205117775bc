package entity

// Wire types for the assistant backend. Field names follow the backend's
// JSON exactly; mapping to domain types happens in the client.

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the classification result returned by POST /chat.
// Recipient, Amount and Address are present only for the transfer and
// balance actions.
type ChatResponse struct {
	Action    string `json:"action"`
	Message   string `json:"message"`
	Recipient string `json:"recipient,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Address   string `json:"address,omitempty"`
}

// CountResponse is the body of GET /get-count.
type CountResponse struct {
	Count float64 `json:"count"`
}

// PrepareTransferRequest is the body of POST /prepare-transfer.
type PrepareTransferRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// PrepareTransferResponse carries the server-computed call descriptor for a
// transfer, or an error message when preparation was refused.
type PrepareTransferResponse struct {
	ContractAddress string `json:"contract_address"`
	ContractName    string `json:"contract_name"`
	FunctionName    string `json:"function_name"`
	Recipient       string `json:"recipient,omitempty"`
	AmountMicroSTX  uint64 `json:"amount_microstx,omitempty"`
	Error           string `json:"error,omitempty"`
}

// BalanceRequest is the body of POST /get-balance.
type BalanceRequest struct {
	Address string `json:"address"`
}

// BalanceResponse is the backend-side balance lookup for an arbitrary
// address. Message is rendered to the user verbatim.
type BalanceResponse struct {
	Address         string `json:"address"`
	Balance         string `json:"balance"`
	BalanceMicroSTX string `json:"balance_microstx"`
	Message         string `json:"message"`
}

// TxStatusRequest is the body of POST /check-transaction.
type TxStatusRequest struct {
	TxID string `json:"txid"`
}

// TxStatusResponse is the enriched status of a submitted transaction.
type TxStatusResponse struct {
	Status      string `json:"status"`
	ExplorerURL string `json:"explorer_url"`
	Message     string `json:"message"`
}
