// Package server runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hassy/readcycle/internal/bootstrap"
	"github.com/hassy/readcycle/internal/pkg/logger"
)

// Run serves the app until SIGINT or SIGTERM, then drains in-flight
// requests, closes the hub and the database pool.
func Run(app *bootstrap.App) error {
	srv := &http.Server{
		Addr:    app.Config.Server.Addr(),
		Handler: app.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}
	app.Hub.Close()
	app.Pool.Close()

	logger.Info().Msg("Server stopped")
	return nil
}
