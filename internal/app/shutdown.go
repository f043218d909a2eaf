package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"frontpages-collector/internal/observability"
)

// GracefulShutdown cancels the returned context on SIGINT/SIGTERM. The
// orchestrator checks it between targets, so the current target
// finishes and whatever was downloaded still gets assembled.
func GracefulShutdown(logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	return ctx, cancel
}
