package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/config"
	"wallet_companion/internal/domain/entity"
)

const counterCacheKey = "count"

// counterServiceImpl implements port.CounterService on top of the assistant
// backend's read-only counter endpoint.
type counterServiceImpl struct {
	assistant port.AssistantClient
	events    port.EventPublisher
	logger    *zap.Logger
	readCache *cache.Cache
}

// NewCounterService creates a new instance of CounterService.
func NewCounterService(
	assistant port.AssistantClient,
	events port.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) port.CounterService {
	return &counterServiceImpl{
		assistant: assistant,
		events:    events,
		logger:    logger.Named("CounterService"),
		readCache: cache.New(
			time.Duration(cfg.Cache.CounterTTLSeconds)*time.Second,
			time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
		),
	}
}

// Count implements port.CounterService.
func (s *counterServiceImpl) Count(ctx context.Context, bypassCache bool) (int64, error) {
	if !bypassCache {
		if cached, found := s.readCache.Get(counterCacheKey); found {
			return cached.(int64), nil
		}
	}

	value, err := s.assistant.CounterValue(ctx)
	if err != nil {
		s.logger.Error("Failed to read counter value", zap.Error(err))
		return 0, err
	}

	s.readCache.Set(counterCacheKey, value, cache.DefaultExpiration)
	s.logger.Debug("Counter value fetched", zap.Int64("count", value))
	s.events.Publish(entity.Event{Type: entity.EventCounter, Data: value})
	return value, nil
}

// CounterPoller periodically re-reads the counter so stream subscribers see
// chain-side increments without asking.
type CounterPoller struct {
	counter  port.CounterService
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

// NewCounterPoller creates a poller over the given counter service.
func NewCounterPoller(counter port.CounterService, cfg *config.Config, logger *zap.Logger) *CounterPoller {
	return &CounterPoller{
		counter:  counter,
		interval: time.Duration(cfg.Counter.PollingIntervalMillis) * time.Millisecond,
		timeout:  time.Duration(cfg.Assistant.RequestTimeoutMillis) * time.Millisecond,
		logger:   logger.Named("CounterPoller"),
	}
}

// Run polls until ctx is cancelled. Failed polls are logged and skipped.
func (p *CounterPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("Counter poller started", zap.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Counter poller stopped")
			return
		case <-ticker.C:
			pollCtx, cancel := context.WithTimeout(ctx, p.timeout)
			if _, err := p.counter.Count(pollCtx, true); err != nil {
				p.logger.Warn("Counter poll failed", zap.Error(err))
			}
			cancel()
		}
	}
}
