// Package logger owns the bridge between the zap loggers used throughout the
// gateway and the process-wide slog default, so third-party code logging via
// slog ends up in the same stream.
package logger

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// InitZapBridge routes the slog default through an existing zap core so the
// slog helpers and zap loggers produce one coherent stream.
func InitZapBridge(l *zap.Logger) {
	handler := zapslog.NewHandler(l.Core(), &zapslog.HandlerOptions{})
	slog.SetDefault(slog.New(handler))
}
