// Package signals wires OS signals to context cancellation.
package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sensorscope/sensorscope/internal/pkg/constants"
	"github.com/sensorscope/sensorscope/internal/pkg/logger"
)

// SetupHandler cancels the provided context on SIGINT, SIGTERM, or SIGHUP.
// Returns a cleanup function that should be called when the handler is no
// longer needed.
func SetupHandler(ctx context.Context, cancel context.CancelFunc) (cleanup func()) {
	sigCh := make(chan os.Signal, constants.SignalChannelBuffer)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, initiating shutdown", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
	}
}
