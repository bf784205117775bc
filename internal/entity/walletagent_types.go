package entity

// Wire types for the wallet agent, the headless counterpart of a browser
// extension wallet. Both endpoints block until the user acts on the prompt.

// ConnectResponse is the body of POST /connect.
type ConnectResponse struct {
	Addresses []struct {
		Symbol  string `json:"symbol"`
		Address string `json:"address"`
	} `json:"addresses"`
}

// ContractCallRequest is the body of POST /contract-call.
type ContractCallRequest struct {
	ContractAddress   string            `json:"contract_address"`
	ContractName      string            `json:"contract_name"`
	FunctionName      string            `json:"function_name"`
	Args              []ContractCallArg `json:"args"`
	Network           string            `json:"network"`
	PostConditionMode string            `json:"post_condition_mode"`
}

// ContractCallArg mirrors one typed argument on the wire.
type ContractCallArg struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ContractCallResponse reports how the approval prompt ended. Finished=false
// means the user cancelled; TxID is set only when finished.
type ContractCallResponse struct {
	Finished bool   `json:"finished"`
	TxID     string `json:"tx_id,omitempty"`
}
