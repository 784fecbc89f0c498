// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

// SupportedDrivers lists the database/sql driver names the plan store accepts.
var SupportedDrivers = []string{"pgx", "sqlite3"}

// validateServer checks that the merged [StructuredConfig] carries what the
// plan server needs before it is used at startup.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: no listen address", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs)
	}

	if err := cfg.Storage.validate(); err != nil {
		return err
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	// Any request may ask for its plan to be recorded.
	if cfg.App.FingerprintSalt == "" {
		return fmt.Errorf("%w: fingerprint salt is required to record plans", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Workers.RetentionPeriod < 0 {
		return fmt.Errorf("%w: negative retention period", ErrInvalidWorkerConfigs)
	}
	if cfg.Workers.RetentionPeriod > 0 && cfg.Workers.RetentionInterval <= 0 {
		return fmt.Errorf("%w: retention interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (s Storage) validate() error {
	if s.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if !slices.Contains(SupportedDrivers, s.DB.Driver) {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, s.DB.Driver)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN != "" {
		if err := (Storage{DB: DB(cfg.Storage.DB)}).validate(); err != nil {
			return err
		}
	}

	return nil
}
