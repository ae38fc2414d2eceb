package api

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	usermemory "github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/plant-nursery-api/internal/platform/postgres"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage/filestore"
	storagememory "github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
	storagepostgres "github.com/Apurer/plant-nursery-api/internal/platform/storage/postgres"
)

// Sessions is a session store that can also drop expired sessions.
type Sessions interface {
	userports.SessionStore
	userports.SessionPurger
}

// Storage is the opened backend plus the session store that lives beside it.
type Storage struct {
	Backend  storage.Backend
	Sessions Sessions
}

// Close releases the backend.
func (s *Storage) Close() error {
	if s == nil || s.Backend == nil {
		return nil
	}
	return s.Backend.Close()
}

// OpenStorage builds the backend selected by storage.driver. Postgres
// schemas are migrated before use.
func OpenStorage(ctx context.Context, cfg Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case DriverMemory:
		logger.Info("storage configured in memory")
		return &Storage{
			Backend:  storagememory.New(storagememory.Snapshot{}),
			Sessions: usermemory.NewSessionStore(),
		}, nil
	case DriverFile:
		store, err := filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, errors.Wrap(err, "open file storage")
		}
		snapshot, empty, err := store.Load()
		if err != nil {
			return nil, errors.Wrap(err, "load file storage")
		}
		logger.Info("storage configured with data files",
			slog.String("dir", cfg.Storage.DataDir),
			slog.Bool("fresh", empty),
			slog.Int("products", len(snapshot.Products)),
			slog.Int("orders", len(snapshot.Orders)),
		)
		return &Storage{
			Backend:  storagememory.New(snapshot, storagememory.WithPersister(store)),
			Sessions: usermemory.NewSessionStore(),
		}, nil
	case DriverPostgres:
		db, closeFn, err := platformpostgres.Open(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			return nil, errors.Wrap(err, "connect to postgres")
		}
		if err := migrations.Run(db); err != nil {
			_ = closeFn()
			return nil, errors.Wrap(err, "migrate postgres schema")
		}
		logger.Info("storage configured with postgres")
		return &Storage{
			Backend:  storagepostgres.New(db, closeFn),
			Sessions: userpostgres.NewSessionStore(db),
		}, nil
	default:
		return nil, errors.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
