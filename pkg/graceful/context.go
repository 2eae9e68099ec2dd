package graceful

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Context creates a context that is canceled when SIGINT or SIGTERM is received.
func Context(ctx context.Context, log *slog.Logger) (context.Context, context.CancelFunc) {
	if log == nil {
		log = slog.Default()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ctx.Done()
		log.Info("shutdown_started")
	}()

	return ctx, stop
}

// Shutdown calls fn with a fresh context bounded by timeout. It is meant for
// the cleanup that runs after Context has been canceled.
func Shutdown(timeout time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx)
}
