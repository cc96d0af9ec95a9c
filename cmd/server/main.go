// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/churn-predictor/internal/config"
	"github.com/unclebandit/churn-predictor/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run() error {
	cfg, envFound := config.Load()

	base, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer base.Sync()
	log := base.Sugar()

	if !envFound {
		log.Info("⚠️ No .env file found, relying on OS environment variables")
	}

	app, err := setup(cfg, log)
	if err != nil {
		log.Errorw("❌ startup failed", "error", err)
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, srv, log); err != nil {
		log.Errorw("❌ server stopped", "error", err)
		return err
	}
	return nil
}

// serve runs srv until ctx is canceled or the listener fails, then shuts it
// down. Listener errors are returned so the caller's deferred cleanup runs.
func serve(ctx context.Context, srv *http.Server, log *zap.SugaredLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("🚀 Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}

