package entity

import (
	"fmt"
	"time"
)

// ArgType identifies the Clarity type of a contract call argument.
type ArgType string

const (
	ArgUint      ArgType = "uint"
	ArgPrincipal ArgType = "principal"
)

// ContractArg is one ordered, typed argument of a contract call. The value is
// kept as its wire representation; the gateway never interprets it.
type ContractArg struct {
	Type  ArgType `json:"type"`
	Value string  `json:"value"`
}

// UintArg builds a uint argument from a micro-STX amount.
func UintArg(v uint64) ContractArg {
	return ContractArg{Type: ArgUint, Value: fmt.Sprintf("%d", v)}
}

// PrincipalArg builds a principal argument from an address.
func PrincipalArg(address string) ContractArg {
	return ContractArg{Type: ArgPrincipal, Value: address}
}

// TransactionRequest identifies a contract entry point plus its arguments.
// Immutable once constructed; passed opaquely to the wallet agent.
type TransactionRequest struct {
	ContractAddress string        `json:"contractAddress"`
	ContractName    string        `json:"contractName"`
	FunctionName    string        `json:"functionName"`
	Args            []ContractArg `json:"args"`
}

// ContractPrincipal returns the fully qualified contract identifier.
func (r TransactionRequest) ContractPrincipal() string {
	return r.ContractAddress + "." + r.ContractName
}

// TxState is the lifecycle state of the single orchestrated transaction slot.
type TxState string

const (
	TxStateIdle             TxState = "idle"
	TxStateAwaitingApproval TxState = "awaiting_approval"
	TxStateSubmitted        TxState = "submitted"
	TxStateCancelled        TxState = "cancelled"
	TxStateFailed           TxState = "failed"
)

// Terminal reports whether the state can be overwritten by a new request.
func (s TxState) Terminal() bool {
	return s == TxStateSubmitted || s == TxStateCancelled || s == TxStateFailed
}

// TransactionOutcome is a snapshot of the orchestrator slot. TxID is set only
// in the submitted state, Reason only in the failed state. Outcomes are
// one-way: a new user action produces a new outcome, never a transition out
// of a terminal state.
type TransactionOutcome struct {
	State       TxState   `json:"state"`
	TxID        string    `json:"txId,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	ExplorerURL string    `json:"explorerUrl,omitempty"`
	At          time.Time `json:"at"`
}
