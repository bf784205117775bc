package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/config"
	"wallet_companion/internal/domain/entity"
	"wallet_companion/internal/pkg/stx"
	"wallet_companion/pkg/metrics"
)

// sessionServiceImpl implements port.SessionService. It owns the single
// wallet session of the gateway process; all mutations go through mu.
type sessionServiceImpl struct {
	wallet       port.WalletAgent
	chain        port.ChainClient
	events       port.EventPublisher
	logger       *zap.Logger
	cfg          *config.Config
	balanceCache *cache.Cache
	group        singleflight.Group

	mu      sync.Mutex
	session entity.WalletSession
	balance *entity.Balance
}

// NewSessionService creates a new instance of SessionService.
func NewSessionService(
	wallet port.WalletAgent,
	chain port.ChainClient,
	events port.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) port.SessionService {
	return &sessionServiceImpl{
		wallet: wallet,
		chain:  chain,
		events: events,
		logger: logger.Named("SessionService"),
		cfg:    cfg,
		balanceCache: cache.New(
			time.Duration(cfg.Cache.BalanceTTLSeconds)*time.Second,
			time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
		),
	}
}

// Connect implements port.SessionService.
func (s *sessionServiceImpl) Connect(ctx context.Context) (entity.WalletSession, error) {
	addresses, err := s.wallet.Connect(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrConnectionRejected) {
			metrics.WalletConnects.WithLabelValues("rejected").Inc()
			s.logger.Info("Wallet connect rejected")
			return entity.WalletSession{}, err
		}
		metrics.WalletConnects.WithLabelValues("failed").Inc()
		s.logger.Error("Wallet connect failed", zap.Error(err))
		return entity.WalletSession{}, fmt.Errorf("%w: %v", entity.ErrNetworkUnavailable, err)
	}

	var stacksAddress string
	for _, a := range addresses {
		if a.IsStacks() {
			stacksAddress = a.Address
			break
		}
	}
	if stacksAddress == "" {
		metrics.WalletConnects.WithLabelValues("failed").Inc()
		s.logger.Warn("Wallet returned no Stacks address", zap.Int("addressCount", len(addresses)))
		return entity.WalletSession{}, fmt.Errorf("%w: wallet returned no Stacks address", entity.ErrConnectionRejected)
	}

	s.mu.Lock()
	s.session = entity.WalletSession{Address: stacksAddress, Connected: true}
	s.balance = nil
	session := s.session
	s.mu.Unlock()

	metrics.WalletConnects.WithLabelValues("connected").Inc()
	s.logger.Info("Wallet connected", zap.String("address", entity.ShortAddress(stacksAddress)))
	s.events.Publish(entity.Event{Type: entity.EventSession, Data: session})

	// Balance is fetched as a side effect of connecting; its failure must
	// not fail the connect.
	go func() {
		fetchCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Network.RequestTimeoutMillis)*time.Millisecond)
		defer cancel()
		if _, err := s.RefreshBalance(fetchCtx, false); err != nil {
			s.logger.Warn("Post-connect balance fetch failed", zap.Error(err))
		}
	}()

	return session, nil
}

// Disconnect implements port.SessionService.
func (s *sessionServiceImpl) Disconnect() {
	s.mu.Lock()
	s.session = entity.WalletSession{}
	s.balance = nil
	s.mu.Unlock()

	s.logger.Info("Wallet disconnected")
	s.events.Publish(entity.Event{Type: entity.EventSession, Data: entity.WalletSession{}})
}

// Session implements port.SessionService.
func (s *sessionServiceImpl) Session() entity.WalletSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Balance implements port.SessionService.
func (s *sessionServiceImpl) Balance() *entity.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balance == nil {
		return nil
	}
	b := *s.balance
	return &b
}

// RefreshBalance implements port.SessionService. Concurrent refreshes for
// the same address are collapsed into one node read.
func (s *sessionServiceImpl) RefreshBalance(ctx context.Context, bypassCache bool) (entity.Balance, error) {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if !session.Connected {
		return entity.Balance{}, entity.ErrNotConnected
	}

	balance, err := s.fetchBalance(ctx, session.Address, bypassCache)
	if err != nil {
		return entity.Balance{}, err
	}

	// Apply only if the session still points at the fetched address; a late
	// completion after disconnect or reconnect is dropped.
	s.mu.Lock()
	applied := s.session.Connected && s.session.Address == balance.Address
	if applied {
		b := balance
		s.balance = &b
	}
	s.mu.Unlock()

	if applied {
		s.events.Publish(entity.Event{Type: entity.EventBalance, Data: balance})
	}
	return balance, nil
}

// fetchBalance reads one address's balance, serving from the short-lived
// cache unless bypassed. A fresh read repopulates the cache. On any failure
// the prior balance stays in place.
func (s *sessionServiceImpl) fetchBalance(ctx context.Context, address string, bypassCache bool) (entity.Balance, error) {
	if !bypassCache {
		if cached, found := s.balanceCache.Get(address); found {
			return cached.(entity.Balance), nil
		}
	}

	result, err, _ := s.group.Do(address, func() (any, error) {
		micro, err := s.chain.GetAccountBalance(ctx, address)
		if err != nil {
			metrics.BalanceFetches.WithLabelValues("error").Inc()
			s.logger.Error("Failed to fetch balance",
				zap.String("address", entity.ShortAddress(address)),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", entity.ErrNetworkUnavailable, err)
		}

		balance := entity.Balance{
			Address:  address,
			MicroSTX: micro,
			Display:  stx.FormatMicro(micro),
		}
		s.balanceCache.Set(address, balance, cache.DefaultExpiration)
		metrics.BalanceFetches.WithLabelValues("ok").Inc()
		s.logger.Debug("Fetched balance",
			zap.String("address", entity.ShortAddress(address)),
			zap.String("display", balance.Display))
		return balance, nil
	})
	if err != nil {
		return entity.Balance{}, err
	}
	return result.(entity.Balance), nil
}
