package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	orderworkflows "github.com/Apurer/plant-nursery-api/internal/domains/orders/adapters/workflows"
	platformobservability "github.com/Apurer/plant-nursery-api/internal/platform/observability"
	"github.com/Apurer/plant-nursery-api/internal/server"
)

// Run boots the Plant Nursery HTTP API with observability, storage and
// order placement wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.App.ServiceName, cfg.ObservabilityOptions()...)
	if err != nil {
		return errors.Wrap(err, "failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	st, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	services, err := BuildServices(cfg, st, instruments)
	if err != nil {
		return err
	}
	if cfg.Storage.Seed {
		if _, err := SeedCatalog(ctx, services.Catalog, logger); err != nil {
			return err
		}
	}
	if err := EnsureAdmin(ctx, cfg, services.Users, logger); err != nil {
		return err
	}

	services.Placement = orderworkflows.NewInlinePlacement(services.Orders)
	if cfg.TemporalEnabled() {
		temporalClient, err := ConnectTemporal(cfg, instruments, "temporal-client")
		if err != nil {
			logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
		} else {
			defer temporalClient.Close()
			services.Placement = orderworkflows.NewTemporalPlacement(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
		}
	}

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go purgeSessions(purgeCtx, st.Sessions, cfg.Sessions.PurgeInterval, logger)

	router := server.NewRouter(services, server.Options{
		ServiceName:    cfg.App.ServiceName,
		Logger:         logger,
		Debug:          cfg.App.Debug,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})
	addr := ":" + cfg.HTTP.Port
	logger.Info("Plant Nursery API listening", slog.String("addr", addr), slog.String("storage", cfg.Storage.Driver))
	if err := router.Run(addr); err != nil {
		logger.Error("Plant Nursery API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func purgeSessions(ctx context.Context, sessions Sessions, every time.Duration, logger *slog.Logger) {
	if every <= 0 || sessions == nil {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			if removed > 0 {
				logger.Debug("expired sessions purged", slog.Int("removed", removed))
			}
		}
	}
}
