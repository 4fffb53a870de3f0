// Package app provides application lifecycle management for ChartScope.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/chartscope/chartscope/internal/cache"
	"github.com/chartscope/chartscope/internal/config"
	"github.com/chartscope/chartscope/internal/service"
	"github.com/chartscope/chartscope/internal/telemetry"
	"github.com/chartscope/chartscope/internal/tools"
	"github.com/chartscope/chartscope/pkg/logger"
)

// App bundles the components needed to run the ChartScope server: the MCP
// stdio listener, the optional operational HTTP server, and the cache
// sweeper for the memory backend. It provides lifecycle management and
// graceful shutdown.
type App struct {
	config    *config.Config
	service   service.ChartService
	tools     *tools.Server
	opsServer *http.Server
	telemetry *telemetry.Telemetry

	// Backend-specific resources; at most one of these is set.
	sweeper     *cache.MemoryStore
	redisClient *redis.Client

	gracefulTimeout time.Duration

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start runs all components and blocks until the MCP client disconnects,
// a component fails, or Stop is called. The first failure cancels the
// rest.
func (app *App) Start() error {
	group, gctx := errgroup.WithContext(app.ctx)

	if app.sweeper != nil {
		group.Go(func() error {
			return app.sweeper.Start(gctx)
		})
	}

	if app.opsServer != nil {
		group.Go(func() error {
			logger.Infof("Operational server listening on %s", app.opsServer.Addr)
			if err := app.opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("operational server failed: %w", err)
			}
			return nil
		})
		// ListenAndServe only returns once Shutdown is called, so watch
		// for cancellation here.
		group.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.gracefulTimeout)
			defer cancel()

			if err := app.opsServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("operational server forced to shutdown: %w", err)
			}
			return nil
		})
	}

	group.Go(func() error {
		// A closed stdio stream means the MCP client is gone; take the
		// rest of the process down with it.
		defer app.cancelFunc()

		logger.Info("MCP server listening on stdio")
		if err := app.tools.ServeStdio(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("MCP server failed: %w", err)
		}
		return nil
	})

	return group.Wait()
}

// Stop gracefully stops the application with the given timeout. It cancels
// the run context, which unwinds Start, then releases backend resources.
func (app *App) Stop(timeout time.Duration) error {
	logger.Info("Shutting down...")

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if app.sweeper != nil {
		if err := app.sweeper.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop cache sweeper: %w", err))
		}
	}
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}
	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down telemetry: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("Shutdown complete")
	return nil
}

// Service returns the chart service, letting commands call the lookup
// pipeline without going through MCP.
func (app *App) Service() service.ChartService {
	return app.service
}

// Config returns the application configuration.
func (app *App) Config() *config.Config {
	return app.config
}

// OpsServer returns the operational HTTP server, or nil when no ops
// address is configured. Useful for tests to reach the actual listener.
func (app *App) OpsServer() *http.Server {
	return app.opsServer
}
