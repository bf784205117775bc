package service

import (
	"wallet_companion/internal/config"
	"wallet_companion/internal/domain/entity"
)

// IncrementRequest builds the call descriptor for the counter contract's
// increment function.
func IncrementRequest(contracts config.ContractsConfig) entity.TransactionRequest {
	return entity.TransactionRequest{
		ContractAddress: contracts.Counter.Address,
		ContractName:    contracts.Counter.Name,
		FunctionName:    "increment",
	}
}

// TransferRequest builds the call descriptor for the transfer contract's
// transfer-stx function. Amount is in micro-STX.
func TransferRequest(contracts config.ContractsConfig, recipient string, microSTX uint64) entity.TransactionRequest {
	return entity.TransactionRequest{
		ContractAddress: contracts.Transfer.Address,
		ContractName:    contracts.Transfer.Name,
		FunctionName:    "transfer-stx",
		Args: []entity.ContractArg{
			entity.PrincipalArg(recipient),
			entity.UintArg(microSTX),
		},
	}
}
