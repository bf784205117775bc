package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/domain/entity"
	wire "wallet_companion/internal/entity"
)

func newChatService(assistant *fakeAssistant, counter port.CounterService, orchestrator port.Orchestrator, transfer port.TransferService, events port.EventPublisher) port.ChatService {
	if counter == nil {
		counter = &fakeCounter{}
	}
	if orchestrator == nil {
		orchestrator = &fakeOrchestrator{}
	}
	if transfer == nil {
		transfer = &fakeTransfer{}
	}
	if events == nil {
		events = port.NopPublisher{}
	}
	return NewChatService(assistant, counter, orchestrator, transfer, events, testConfig(), zap.NewNop())
}

func TestSendMessageFallsBackWhenClassifierIsDown(t *testing.T) {
	assistant := &fakeAssistant{classifyErr: errors.New("connection refused")}
	events := &eventRecorder{}
	svc := newChatService(assistant, nil, nil, nil, events)

	reply := svc.SendMessage(context.Background(), "what is the counter?")
	assert.Equal(t, entity.IntentNone, reply.Intent)
	assert.Equal(t, fallbackChatMessage, reply.Message)
	assert.False(t, reply.AwaitingConfirmation)
	assert.NotEmpty(t, events.byType(entity.EventChat))
}

func TestSendMessageReadIntent(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{Intent: entity.IntentRead}}
	counter := &fakeCounter{count: 42}
	svc := newChatService(assistant, counter, nil, nil, nil)

	reply := svc.SendMessage(context.Background(), "read the counter")
	assert.Equal(t, entity.IntentRead, reply.Intent)
	assert.Equal(t, "The counter is currently at: 42", reply.Message)
}

func TestSendMessageIncrementIntent(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{Intent: entity.IntentIncrement}}
	orchestrator := &fakeOrchestrator{outcome: entity.TransactionOutcome{State: entity.TxStateSubmitted, TxID: "0x3"}}
	svc := newChatService(assistant, nil, orchestrator, nil, nil)

	reply := svc.SendMessage(context.Background(), "increment it")
	assert.Equal(t, entity.IntentIncrement, reply.Intent)
	assert.Equal(t, "Transaction submitted! The counter will update shortly.", reply.Message)

	req := orchestrator.request()
	assert.Equal(t, "increment", req.FunctionName)
	assert.Equal(t, "ST3MHY0Z6DK6KC137X9XZQ4R61Y1PNRDN90MB3YHW.contador", req.ContractPrincipal())
}

func TestSendMessageIncrementWithoutWallet(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{Intent: entity.IntentIncrement}}
	orchestrator := &fakeOrchestrator{err: entity.ErrNotConnected}
	svc := newChatService(assistant, nil, orchestrator, nil, nil)

	reply := svc.SendMessage(context.Background(), "increment it")
	assert.Equal(t, "You need to connect your wallet first.", reply.Message)
}

func TestSendMessageTransferIntentProposes(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{
		Intent:    entity.IntentTransfer,
		Recipient: testRecipient,
		Amount:    "2.5",
	}}
	transfer := &fakeTransfer{}
	svc := newChatService(assistant, nil, nil, transfer, nil)

	reply := svc.SendMessage(context.Background(), "send 2.5 stx to "+testRecipient)
	assert.Equal(t, entity.IntentTransfer, reply.Intent)
	assert.True(t, reply.AwaitingConfirmation)

	pending := transfer.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, testRecipient, pending.Recipient)
	assert.Equal(t, "2.5", pending.Amount.String())
}

func TestSendMessageTransferIntentMissingAmount(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{
		Intent:    entity.IntentTransfer,
		Recipient: testRecipient,
	}}
	transfer := &fakeTransfer{}
	svc := newChatService(assistant, nil, nil, transfer, nil)

	reply := svc.SendMessage(context.Background(), "send some stx")
	assert.Equal(t, entity.IntentTransfer, reply.Intent)
	assert.False(t, reply.AwaitingConfirmation)
	assert.Nil(t, transfer.Pending(), "an incomplete transfer intent must not park a proposal")
}

func TestSendMessageTransferIntentUnparseableAmount(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{
		Intent:    entity.IntentTransfer,
		Recipient: testRecipient,
		Amount:    "a few",
	}}
	transfer := &fakeTransfer{}
	svc := newChatService(assistant, nil, nil, transfer, nil)

	reply := svc.SendMessage(context.Background(), "send a few stx")
	assert.False(t, reply.AwaitingConfirmation)
	assert.Nil(t, transfer.Pending())
}

func TestSendMessageTransferIntentZeroAmount(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{
		Intent:    entity.IntentTransfer,
		Recipient: testRecipient,
		Amount:    "0",
	}}
	transfer := &fakeTransfer{}
	svc := newChatService(assistant, nil, nil, transfer, nil)

	reply := svc.SendMessage(context.Background(), "send 0 stx to "+testRecipient)
	assert.False(t, reply.AwaitingConfirmation)
	assert.Nil(t, transfer.Pending(), "a zero-amount transfer intent must not park a proposal")
}

func TestSendMessageBalanceIntent(t *testing.T) {
	assistant := &fakeAssistant{
		classification: entity.Classification{Intent: entity.IntentBalance, Address: testRecipient},
		balanceResp:    wire.BalanceResponse{Message: "The balance of that address is 12.000000 STX."},
	}
	svc := newChatService(assistant, nil, nil, nil, nil)

	reply := svc.SendMessage(context.Background(), "balance of "+testRecipient)
	assert.Equal(t, entity.IntentBalance, reply.Intent)
	assert.Equal(t, "The balance of that address is 12.000000 STX.", reply.Message)
}

func TestSendMessageBalanceIntentWithoutAddress(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{Intent: entity.IntentBalance}}
	svc := newChatService(assistant, nil, nil, nil, nil)

	reply := svc.SendMessage(context.Background(), "whats my balance")
	assert.Equal(t, "Which address should I look up the balance for?", reply.Message)
}

func TestSendMessageNoneIntentIsVerbatim(t *testing.T) {
	assistant := &fakeAssistant{classification: entity.Classification{
		Intent:  entity.IntentNone,
		Message: "I can read or increment the counter, send STX, or look up balances.",
	}}
	svc := newChatService(assistant, nil, nil, nil, nil)

	reply := svc.SendMessage(context.Background(), "hello")
	assert.Equal(t, entity.IntentNone, reply.Intent)
	assert.Equal(t, "I can read or increment the counter, send STX, or look up balances.", reply.Message)
}
