package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/gateway/cache"
	"github.com/abuRizq/vegetable-shop/internal/gateway/client"
	httpapi "github.com/abuRizq/vegetable-shop/internal/gateway/http"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires together the session gateway.
type Application struct {
	cfg    Config
	logger *slog.Logger

	sessions *cache.SessionCache

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) *Application {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Options{
			Service: "session-gateway",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.sessions = cache.New(cfg.SessionCacheTTL)

	router := httpapi.NewRouter(
		client.New(cfg.BackendURL),
		app.sessions,
		cfg.CookieMaxAge,
		cfg.CookieSecure(),
		app.logger,
	)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return app
}

// Run starts the gateway and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("session gateway starting",
		"port", app.cfg.Port,
		"backend", app.cfg.BackendURL,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the server and the session cache.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down session gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.sessions.Stop()

	app.logger.Info("session gateway stopped")
	return nil
}
