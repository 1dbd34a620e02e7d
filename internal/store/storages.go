package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
)

// Storages bundles the persistence layer of the server.
type Storages struct {
	VaultStore VaultStore

	closers []func(ctx context.Context) error
}

// NewStorages connects the backend selected by cfg.Driver, applies its
// schema and wraps it with timeouts and retries.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := &Storages{}

	var (
		vault VaultStore
		err   error
	)
	switch cfg.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		vault, err = storages.connectSQL(ctx, cfg, log)
	case config.DriverMongo:
		vault, err = storages.connectMongo(ctx, cfg, log)
	case config.DriverMemory:
		log.Warn().Str("func", "NewStorages").Msg("using in-memory vault store, records are lost on restart")
		vault = NewMemoryVaultStore()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, errors.Join(err, storages.Close(ctx))
	}

	storages.VaultStore = NewResilientStore(vault, cfg)
	return storages, nil
}

func (s *Storages) connectSQL(ctx context.Context, cfg config.Storage, log *logger.Logger) (VaultStore, error) {
	var (
		db  *DB
		err error
	)
	if cfg.Driver == config.DriverPostgres {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, func(context.Context) error { return db.Close() })

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, err
	}

	return NewVaultRepository(db), nil
}

func (s *Storages) connectMongo(ctx context.Context, cfg config.Storage, log *logger.Logger) (VaultStore, error) {
	client, err := NewConnectMongo(ctx, cfg.Mongo, log)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, client.Disconnect)

	return NewMongoVaultStore(ctx, client, cfg.Mongo.Database)
}

// Close releases every backend connection.
func (s *Storages) Close(ctx context.Context) error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
