// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/MKhiriev/go-pass-locker/internal/crypto"
)

// validate checks that the final merged [StructuredConfig] can start the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	params := crypto.NewKDFParams(cfg.Vault.ArgonTime, cfg.Vault.ArgonMemoryKiB, cfg.Vault.ArgonThreads)
	if err := crypto.ValidateKDFParams(params, []byte("config-check")); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidVaultConfigs, err)
	}
	if cfg.Vault.KDFWorkers < 0 {
		return ErrInvalidVaultConfigs
	}

	if err := cfg.Storage.validate(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (s Storage) validate() error {
	switch s.Driver {
	case DriverPostgres, DriverSQLite:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: %s driver needs a DSN", ErrInvalidStorageConfigs, s.Driver)
		}
	case DriverMongo:
		if s.Mongo.URI == "" || s.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo driver needs uri and database", ErrInvalidStorageConfigs)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, s.Driver)
	}

	if s.OperationTimeout <= 0 {
		return fmt.Errorf("%w: operation timeout must be positive", ErrInvalidStorageConfigs)
	}

	return nil
}
