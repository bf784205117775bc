package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/config"
	"wallet_companion/internal/domain/entity"
	"wallet_companion/pkg/metrics"
)

// orchestratorImpl implements port.Orchestrator. It holds the single
// transaction slot; the inFlight flag is the explicit guard that rejects a
// second call while one is awaiting approval.
type orchestratorImpl struct {
	wallet  port.WalletAgent
	session port.SessionService
	counter port.CounterService
	events  port.EventPublisher
	logger  *zap.Logger
	cfg     *config.Config

	refetchDelay time.Duration

	mu       sync.Mutex
	inFlight bool
	outcome  entity.TransactionOutcome
}

// NewOrchestrator creates a new instance of Orchestrator.
func NewOrchestrator(
	wallet port.WalletAgent,
	session port.SessionService,
	counter port.CounterService,
	events port.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) port.Orchestrator {
	return &orchestratorImpl{
		wallet:       wallet,
		session:      session,
		counter:      counter,
		events:       events,
		logger:       logger.Named("Orchestrator"),
		cfg:          cfg,
		refetchDelay: time.Duration(cfg.Orchestrator.RefetchDelayMillis) * time.Millisecond,
		outcome:      entity.TransactionOutcome{State: entity.TxStateIdle, At: time.Now()},
	}
}

// Execute implements port.Orchestrator.
func (o *orchestratorImpl) Execute(ctx context.Context, req entity.TransactionRequest, refetch port.RefetchTarget) (entity.TransactionOutcome, error) {
	if !o.session.Session().Connected {
		return o.Outcome(), entity.ErrNotConnected
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		o.logger.Warn("Rejected contract call, another is awaiting approval",
			zap.String("contract", req.ContractPrincipal()),
			zap.String("function", req.FunctionName))
		return o.Outcome(), entity.ErrTransactionInFlight
	}
	o.inFlight = true
	o.outcome = entity.TransactionOutcome{State: entity.TxStateAwaitingApproval, At: time.Now()}
	awaiting := o.outcome
	o.mu.Unlock()

	o.events.Publish(entity.Event{Type: entity.EventTransaction, Data: awaiting})
	o.logger.Info("Awaiting wallet approval",
		zap.String("contract", req.ContractPrincipal()),
		zap.String("function", req.FunctionName))

	txID, err := o.wallet.RequestContractCall(ctx, req)

	var outcome entity.TransactionOutcome
	var execErr error
	switch {
	case err == nil:
		outcome = entity.TransactionOutcome{
			State:       entity.TxStateSubmitted,
			TxID:        txID,
			ExplorerURL: o.cfg.ExplorerTxURL(txID),
			At:          time.Now(),
		}
		metrics.Transactions.WithLabelValues("submitted").Inc()
		o.logger.Info("Transaction submitted", zap.String("txId", txID))
		o.scheduleRefetch(refetch)

	case errors.Is(err, entity.ErrTransactionCancelled):
		outcome = entity.TransactionOutcome{State: entity.TxStateCancelled, At: time.Now()}
		execErr = err
		metrics.Transactions.WithLabelValues("cancelled").Inc()
		o.logger.Info("Transaction cancelled by user",
			zap.String("contract", req.ContractPrincipal()))

	default:
		outcome = entity.TransactionOutcome{
			State:  entity.TxStateFailed,
			Reason: err.Error(),
			At:     time.Now(),
		}
		execErr = fmt.Errorf("%w: %v", entity.ErrSubmissionFailed, err)
		metrics.Transactions.WithLabelValues("failed").Inc()
		o.logger.Error("Transaction submission failed",
			zap.String("contract", req.ContractPrincipal()),
			zap.Error(err))
	}

	o.mu.Lock()
	o.inFlight = false
	o.outcome = outcome
	o.mu.Unlock()

	o.events.Publish(entity.Event{Type: entity.EventTransaction, Data: outcome})
	return outcome, execErr
}

// Outcome implements port.Orchestrator.
func (o *orchestratorImpl) Outcome() entity.TransactionOutcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.outcome
}

// scheduleRefetch arms the single delayed re-read of dependent state after a
// submit. Best-effort convergence only; it does not verify the transaction
// landed in a block.
func (o *orchestratorImpl) scheduleRefetch(target port.RefetchTarget) {
	if target == port.RefetchNone {
		return
	}
	time.AfterFunc(o.refetchDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(o.cfg.Network.RequestTimeoutMillis)*time.Millisecond)
		defer cancel()

		switch target {
		case port.RefetchCounter:
			if _, err := o.counter.Count(ctx, true); err != nil {
				o.logger.Warn("Post-submit counter refetch failed", zap.Error(err))
			}
		case port.RefetchBalance:
			if _, err := o.session.RefreshBalance(ctx, true); err != nil {
				o.logger.Warn("Post-submit balance refetch failed", zap.Error(err))
			}
		}
	})
}
