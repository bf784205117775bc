package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/config"
	"wallet_companion/internal/domain/entity"
	"wallet_companion/internal/pkg/stx"
)

// transferServiceImpl implements port.TransferService. The pending slot
// holds at most one proposal; a new one overwrites, and confirm/cancel
// consume it.
type transferServiceImpl struct {
	assistant    port.AssistantClient
	orchestrator port.Orchestrator
	session      port.SessionService
	events       port.EventPublisher
	logger       *zap.Logger
	cfg          *config.Config

	mu      sync.Mutex
	pending *entity.PendingTransfer
}

// NewTransferService creates a new instance of TransferService.
func NewTransferService(
	assistant port.AssistantClient,
	orchestrator port.Orchestrator,
	session port.SessionService,
	events port.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) port.TransferService {
	return &transferServiceImpl{
		assistant:    assistant,
		orchestrator: orchestrator,
		session:      session,
		events:       events,
		logger:       logger.Named("TransferService"),
		cfg:          cfg,
	}
}

// Propose implements port.TransferService.
func (s *transferServiceImpl) Propose(transfer entity.PendingTransfer) {
	s.mu.Lock()
	s.pending = &transfer
	s.mu.Unlock()
	s.logger.Info("Transfer proposal parked",
		zap.String("recipient", entity.ShortAddress(transfer.Recipient)),
		zap.String("amount", transfer.Amount.String()))
}

// Pending implements port.TransferService.
func (s *transferServiceImpl) Pending() *entity.PendingTransfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

// Cancel implements port.TransferService.
func (s *transferServiceImpl) Cancel() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	s.logger.Info("Transfer proposal cancelled")
}

// Confirm implements port.TransferService.
func (s *transferServiceImpl) Confirm(ctx context.Context) (entity.ChatReply, error) {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()

	if pending == nil {
		return entity.ChatReply{}, entity.ErrNoPendingTransfer
	}
	if !s.session.Session().Connected {
		return entity.ChatReply{}, entity.ErrNotConnected
	}
	if !pending.Amount.IsPositive() {
		return entity.ChatReply{}, fmt.Errorf("%w: amount must be greater than 0", entity.ErrInvalidAmount)
	}

	// Floor to micro-STX; sub-micro fractions are dropped, never rounded up.
	micro, err := stx.ToMicro(pending.Amount)
	if err != nil {
		return entity.ChatReply{}, fmt.Errorf("%w: %v", entity.ErrInvalidAmount, err)
	}

	sender := s.session.Session().Address
	prepared, err := s.assistant.PrepareTransfer(ctx, sender, pending.Recipient, pending.Amount)
	if err != nil {
		s.logger.Error("Transfer preparation failed", zap.Error(err))
		return entity.ChatReply{}, fmt.Errorf("%w: %v", entity.ErrSubmissionFailed, err)
	}

	req := entity.TransactionRequest{
		ContractAddress: prepared.ContractAddress,
		ContractName:    prepared.ContractName,
		FunctionName:    prepared.FunctionName,
		Args: []entity.ContractArg{
			entity.PrincipalArg(pending.Recipient),
			entity.UintArg(micro),
		},
	}

	outcome, execErr := s.orchestrator.Execute(ctx, req, port.RefetchBalance)

	switch outcome.State {
	case entity.TxStateSubmitted:
		s.Cancel() // consume the proposal
		reply := entity.ChatReply{
			Intent:  entity.IntentTransfer,
			Message: s.submittedMessage(ctx, outcome.TxID, pending.Amount),
		}
		return reply, nil

	case entity.TxStateCancelled:
		s.Cancel() // consume the proposal
		return entity.ChatReply{
			Intent:  entity.IntentTransfer,
			Message: "Transaction cancelled by user.",
		}, execErr

	default:
		// Proposal stays parked so the user can retry the confirm.
		return entity.ChatReply{
			Intent:  entity.IntentTransfer,
			Message: "The transfer could not be submitted. You can try confirming again.",
		}, execErr
	}
}

// submittedMessage enriches the reply with the backend's transaction status,
// falling back to a generic message when that check fails.
func (s *transferServiceImpl) submittedMessage(ctx context.Context, txID string, amount decimal.Decimal) string {
	statusCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Assistant.RequestTimeoutMillis)*time.Millisecond)
	defer cancel()

	status, err := s.assistant.TransactionStatus(statusCtx, txID)
	if err != nil || strings.TrimSpace(status.Message) == "" {
		if err != nil {
			s.logger.Warn("Transaction status check failed", zap.String("txId", txID), zap.Error(err))
		}
		return fmt.Sprintf("Transfer of %s STX submitted! Transaction ID: %s", amount.String(), txID)
	}
	return status.Message
}

// Transfer implements port.TransferService: the direct form-based path.
func (s *transferServiceImpl) Transfer(ctx context.Context, recipient string, amount decimal.Decimal) (entity.TransactionOutcome, error) {
	if !s.session.Session().Connected {
		return s.orchestrator.Outcome(), entity.ErrNotConnected
	}
	if strings.TrimSpace(recipient) == "" {
		return s.orchestrator.Outcome(), fmt.Errorf("%w: recipient must not be empty", entity.ErrInvalidRecipient)
	}
	if !amount.IsPositive() {
		return s.orchestrator.Outcome(), fmt.Errorf("%w: amount must be greater than 0", entity.ErrInvalidAmount)
	}

	micro, err := stx.ToMicro(amount)
	if err != nil {
		return s.orchestrator.Outcome(), fmt.Errorf("%w: %v", entity.ErrInvalidAmount, err)
	}

	req := TransferRequest(s.cfg.Contracts, recipient, micro)
	return s.orchestrator.Execute(ctx, req, port.RefetchBalance)
}
