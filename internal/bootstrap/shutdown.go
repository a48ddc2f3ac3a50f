package bootstrap

import (
	"context"
	"log/slog"
)

// Stopper is the part of the HTTP server shutdown needs
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server Stopper
	Store  *RecordStore
}

// GracefulShutdown stops the HTTP server first so in-flight requests finish
// against an open record store, then closes the store.
// Errors are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Store != nil && components.Store.Close != nil {
		slog.Info(LogMsgClosingRecordStore)
		if err := components.Store.Close(); err != nil {
			slog.Error(LogMsgRecordStoreCloseErr, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
