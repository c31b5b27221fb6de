package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/facility-heatmap/internal/infra/config"
)

// Preloader warms caches before traffic arrives.
type Preloader interface {
	Preload(ctx context.Context) error
}

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	preloader Preloader
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, preloader Preloader) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, preloader: preloader}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go a.preload(ctx)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address, "dataset_driver", a.cfg.Dataset.Driver)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// preload failures are not fatal; requests retry the load lazily.
func (a *App) preload(ctx context.Context) {
	if a.preloader == nil {
		return
	}
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := a.preloader.Preload(loadCtx); err != nil {
		a.logger.Warn("dataset preload failed", "error", err)
		return
	}
	a.logger.Info("dataset preloaded")
}
