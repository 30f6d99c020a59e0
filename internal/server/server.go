// Package server owns the listen-and-serve lifecycle of the HTTP and gRPC
// endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/grpc"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Run serves handler on config.AppPort() and the gRPC health service on
// config.GRPCPort() until ctx is cancelled, then drains both. A failing
// HTTP listener ends Run with its error.
func Run(ctx context.Context, handler http.Handler, db *gorm.DB) error {
	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	grpcSrv, _, err := grpc.Start(config.GRPCPort(), func(ctx context.Context) error {
		if db == nil {
			return errors.New("database not connected")
		}
		return database.Ping(ctx, db)
	})
	if err != nil {
		return err
	}
	defer grpc.Stop(grpcSrv)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http: shutdown: %w", err)
	}
	return nil
}
