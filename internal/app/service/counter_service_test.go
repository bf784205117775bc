package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet_companion/internal/domain/entity"
)

func TestCountServesCachedValue(t *testing.T) {
	assistant := &fakeAssistant{count: 5}
	events := &eventRecorder{}
	svc := NewCounterService(assistant, events, testConfig(), zap.NewNop())

	count, err := svc.Count(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	count, err = svc.Count(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.Equal(t, int32(1), assistant.countCalls.Load(), "the second read is served from cache")

	assert.Len(t, events.byType(entity.EventCounter), 1, "cache hits publish no event")
}

func TestCountBypassesCache(t *testing.T) {
	assistant := &fakeAssistant{count: 5}
	svc := NewCounterService(assistant, &eventRecorder{}, testConfig(), zap.NewNop())

	_, err := svc.Count(context.Background(), false)
	require.NoError(t, err)

	assistant.count = 6
	count, err := svc.Count(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	assert.Equal(t, int32(2), assistant.countCalls.Load())
}

func TestCountPropagatesBackendError(t *testing.T) {
	backendErr := errors.New("503 service unavailable")
	assistant := &fakeAssistant{countErr: backendErr}
	svc := NewCounterService(assistant, &eventRecorder{}, testConfig(), zap.NewNop())

	_, err := svc.Count(context.Background(), true)
	require.ErrorIs(t, err, backendErr)
}
