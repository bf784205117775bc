package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/config"
	"wallet_companion/internal/domain/entity"
	wire "wallet_companion/internal/entity"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	// Keep the convergence delay short so tests can observe the re-fetch.
	cfg.Orchestrator.RefetchDelayMillis = 20
	return cfg
}

type fakeWalletAgent struct {
	mu         sync.Mutex
	addresses  []entity.WalletAddress
	connectErr error

	callTxID  string
	callErr   error
	callCount int
	lastReq   entity.TransactionRequest

	// When set, RequestContractCall blocks until the channel is closed.
	block chan struct{}
}

func (f *fakeWalletAgent) Connect(context.Context) ([]entity.WalletAddress, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return f.addresses, nil
}

func (f *fakeWalletAgent) RequestContractCall(_ context.Context, req entity.TransactionRequest) (string, error) {
	f.mu.Lock()
	f.callCount++
	f.lastReq = req
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.callErr != nil {
		return "", f.callErr
	}
	return f.callTxID, nil
}

func (f *fakeWalletAgent) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount
}

func (f *fakeWalletAgent) request() entity.TransactionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

type fakeChainClient struct {
	mu        sync.Mutex
	micro     uint64
	err       error
	callCount atomic.Int32
}

func (f *fakeChainClient) GetAccountBalance(context.Context, string) (uint64, error) {
	f.callCount.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return f.micro, nil
}

func (f *fakeChainClient) setMicro(micro uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.micro = micro
}

type fakeSession struct {
	mu           sync.Mutex
	session      entity.WalletSession
	balance      *entity.Balance
	refreshCount atomic.Int32
	freshCount   atomic.Int32
	refreshErr   error
}

func (f *fakeSession) Connect(context.Context) (entity.WalletSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func (f *fakeSession) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = entity.WalletSession{}
	f.balance = nil
}

func (f *fakeSession) Session() entity.WalletSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeSession) Balance() *entity.Balance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance
}

func (f *fakeSession) RefreshBalance(_ context.Context, bypassCache bool) (entity.Balance, error) {
	f.refreshCount.Add(1)
	if bypassCache {
		f.freshCount.Add(1)
	}
	if f.refreshErr != nil {
		return entity.Balance{}, f.refreshErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balance == nil {
		return entity.Balance{}, nil
	}
	return *f.balance, nil
}

type fakeCounter struct {
	count     int64
	err       error
	callCount atomic.Int32
}

func (f *fakeCounter) Count(context.Context, bool) (int64, error) {
	f.callCount.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

type fakeAssistant struct {
	classification entity.Classification
	classifyErr    error

	count      int64
	countErr   error
	countCalls atomic.Int32

	prepareResp  wire.PrepareTransferResponse
	prepareErr   error
	prepareCalls atomic.Int32

	balanceResp wire.BalanceResponse
	balanceErr  error

	statusResp wire.TxStatusResponse
	statusErr  error
}

func (f *fakeAssistant) Classify(context.Context, string) (entity.Classification, error) {
	if f.classifyErr != nil {
		return entity.Classification{}, f.classifyErr
	}
	return f.classification, nil
}

func (f *fakeAssistant) CounterValue(context.Context) (int64, error) {
	f.countCalls.Add(1)
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

func (f *fakeAssistant) PrepareTransfer(context.Context, string, string, decimal.Decimal) (wire.PrepareTransferResponse, error) {
	f.prepareCalls.Add(1)
	if f.prepareErr != nil {
		return wire.PrepareTransferResponse{}, f.prepareErr
	}
	return f.prepareResp, nil
}

func (f *fakeAssistant) AddressBalance(context.Context, string) (wire.BalanceResponse, error) {
	if f.balanceErr != nil {
		return wire.BalanceResponse{}, f.balanceErr
	}
	return f.balanceResp, nil
}

func (f *fakeAssistant) TransactionStatus(context.Context, string) (wire.TxStatusResponse, error) {
	if f.statusErr != nil {
		return wire.TxStatusResponse{}, f.statusErr
	}
	return f.statusResp, nil
}

type fakeOrchestrator struct {
	mu      sync.Mutex
	outcome entity.TransactionOutcome
	err     error
	lastReq entity.TransactionRequest
	calls   int
}

func (f *fakeOrchestrator) Execute(_ context.Context, req entity.TransactionRequest, _ port.RefetchTarget) (entity.TransactionOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = req
	return f.outcome, f.err
}

func (f *fakeOrchestrator) Outcome() entity.TransactionOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

func (f *fakeOrchestrator) request() entity.TransactionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

type fakeTransfer struct {
	mu       sync.Mutex
	proposed []entity.PendingTransfer
}

func (f *fakeTransfer) Propose(t entity.PendingTransfer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.proposed = append(f.proposed, t)
}

func (f *fakeTransfer) Pending() *entity.PendingTransfer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.proposed) == 0 {
		return nil
	}
	p := f.proposed[len(f.proposed)-1]
	return &p
}

func (f *fakeTransfer) Confirm(context.Context) (entity.ChatReply, error) {
	return entity.ChatReply{}, nil
}

func (f *fakeTransfer) Cancel() {}

func (f *fakeTransfer) Transfer(context.Context, string, decimal.Decimal) (entity.TransactionOutcome, error) {
	return entity.TransactionOutcome{}, nil
}

type eventRecorder struct {
	mu     sync.Mutex
	events []entity.Event
}

func (r *eventRecorder) Publish(event entity.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) byType(t entity.EventType) []entity.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
