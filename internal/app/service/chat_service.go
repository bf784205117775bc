package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/config"
	"wallet_companion/internal/domain/entity"
	"wallet_companion/internal/pkg/stx"
	"wallet_companion/pkg/metrics"
)

const fallbackChatMessage = "Sorry, something went wrong while processing your message."

// chatServiceImpl implements port.ChatService: the natural-language bridge
// that classifies free text and drives the other services.
type chatServiceImpl struct {
	assistant    port.AssistantClient
	counter      port.CounterService
	orchestrator port.Orchestrator
	transfer     port.TransferService
	events       port.EventPublisher
	logger       *zap.Logger
	cfg          *config.Config
}

// NewChatService creates a new instance of ChatService.
func NewChatService(
	assistant port.AssistantClient,
	counter port.CounterService,
	orchestrator port.Orchestrator,
	transfer port.TransferService,
	events port.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) port.ChatService {
	return &chatServiceImpl{
		assistant:    assistant,
		counter:      counter,
		orchestrator: orchestrator,
		transfer:     transfer,
		events:       events,
		logger:       logger.Named("ChatService"),
		cfg:          cfg,
	}
}

// SendMessage implements port.ChatService. It never returns an error: a
// failed classification degrades to the fixed fallback reply.
func (s *chatServiceImpl) SendMessage(ctx context.Context, text string) entity.ChatReply {
	started := time.Now()
	classification, err := s.assistant.Classify(ctx, text)
	metrics.ChatClassifyDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		s.logger.Error("Classification unavailable", zap.Error(err))
		metrics.ChatMessages.WithLabelValues("unavailable").Inc()
		reply := entity.ChatReply{Intent: entity.IntentNone, Message: fallbackChatMessage}
		s.events.Publish(entity.Event{Type: entity.EventChat, Data: reply})
		return reply
	}

	metrics.ChatMessages.WithLabelValues(string(classification.Intent)).Inc()

	var reply entity.ChatReply
	switch classification.Intent {
	case entity.IntentRead:
		reply = s.handleRead(ctx)
	case entity.IntentIncrement:
		reply = s.handleIncrement(ctx)
	case entity.IntentTransfer:
		reply = s.handleTransfer(classification)
	case entity.IntentBalance:
		reply = s.handleBalance(ctx, classification)
	case entity.IntentNone:
		reply = entity.ChatReply{Intent: entity.IntentNone, Message: classification.Message}
	}

	s.events.Publish(entity.Event{Type: entity.EventChat, Data: reply})
	return reply
}

func (s *chatServiceImpl) handleRead(ctx context.Context) entity.ChatReply {
	count, err := s.counter.Count(ctx, true)
	if err != nil {
		return entity.ChatReply{
			Intent:  entity.IntentRead,
			Message: "Failed to read the counter value.",
		}
	}
	return entity.ChatReply{
		Intent:  entity.IntentRead,
		Message: fmt.Sprintf("The counter is currently at: %d", count),
	}
}

func (s *chatServiceImpl) handleIncrement(ctx context.Context) entity.ChatReply {
	if _, err := s.orchestrator.Execute(ctx, IncrementRequest(s.cfg.Contracts), port.RefetchCounter); err != nil {
		return entity.ChatReply{
			Intent:  entity.IntentIncrement,
			Message: presentExecuteError(err),
		}
	}
	return entity.ChatReply{
		Intent:  entity.IntentIncrement,
		Message: "Transaction submitted! The counter will update shortly.",
	}
}

func (s *chatServiceImpl) handleTransfer(classification entity.Classification) entity.ChatReply {
	recipient := strings.TrimSpace(classification.Recipient)
	amountStr := strings.TrimSpace(classification.Amount)
	if recipient == "" || amountStr == "" {
		return entity.ChatReply{
			Intent:  entity.IntentTransfer,
			Message: clarificationMessage(classification),
		}
	}

	amount, err := stx.ParseAmount(amountStr)
	if err != nil || !amount.IsPositive() {
		s.logger.Warn("Classifier returned unusable transfer amount",
			zap.String("amount", amountStr), zap.Error(err))
		return entity.ChatReply{
			Intent:  entity.IntentTransfer,
			Message: clarificationMessage(classification),
		}
	}

	prompt := classification.Message
	if strings.TrimSpace(prompt) == "" {
		prompt = fmt.Sprintf("You are about to send %s STX to %s. Confirm the transfer?",
			amount.String(), entity.ShortAddress(recipient))
	}

	s.transfer.Propose(entity.PendingTransfer{
		Recipient: recipient,
		Amount:    amount,
		Prompt:    prompt,
	})
	return entity.ChatReply{
		Intent:               entity.IntentTransfer,
		Message:              prompt,
		AwaitingConfirmation: true,
	}
}

func (s *chatServiceImpl) handleBalance(ctx context.Context, classification entity.Classification) entity.ChatReply {
	address := strings.TrimSpace(classification.Address)
	if address == "" {
		return entity.ChatReply{
			Intent:  entity.IntentBalance,
			Message: clarificationMessage(classification),
		}
	}

	resp, err := s.assistant.AddressBalance(ctx, address)
	if err != nil {
		s.logger.Error("Balance lookup failed", zap.String("address", entity.ShortAddress(address)), zap.Error(err))
		return entity.ChatReply{Intent: entity.IntentBalance, Message: fallbackChatMessage}
	}
	// The backend's message is rendered verbatim.
	return entity.ChatReply{Intent: entity.IntentBalance, Message: resp.Message}
}

// clarificationMessage prefers the classifier's own wording when it supplied
// one, otherwise asks for the missing parameters.
func clarificationMessage(classification entity.Classification) string {
	if strings.TrimSpace(classification.Message) != "" {
		return classification.Message
	}
	switch classification.Intent {
	case entity.IntentTransfer:
		return "To make a transfer I need both a recipient address and an amount."
	case entity.IntentBalance:
		return "Which address should I look up the balance for?"
	default:
		return fallbackChatMessage
	}
}

// presentExecuteError maps orchestrator errors to user-visible text. This is
// the only place chat replies are derived from the error taxonomy.
func presentExecuteError(err error) string {
	switch {
	case errors.Is(err, entity.ErrNotConnected):
		return "You need to connect your wallet first."
	case errors.Is(err, entity.ErrTransactionInFlight):
		return "Another transaction is still awaiting approval."
	case errors.Is(err, entity.ErrTransactionCancelled):
		return "Transaction cancelled by user."
	default:
		return "Failed to execute the transaction. Please try again."
	}
}
