// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the Go client of the vault HTTP API.
//
// [VaultAdapter] mirrors the /api/passwords routes one call per route.
// Failed calls are mapped back onto the sentinel errors in errors.go, so
// callers can use [errors.Is] the same way the server uses its own
// taxonomy (e.g. [ErrAuthenticationFailed] for a wrong master password,
// [ErrUnauthorized] for a rejected token).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-locker/models"
)

// VaultAdapter talks to a vault server on behalf of one bearer token.
type VaultAdapter interface {
	// SetToken stores the bearer token attached to every vault call.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter.
	Token() string

	// Version returns the server version string. No token is required.
	Version(ctx context.Context) (string, error)

	// ListAll returns the views of every record of the token owner.
	ListAll(ctx context.Context) ([]models.RecordView, error)

	// Search returns the views whose website or username contains query.
	Search(ctx context.Context, query string) ([]models.RecordView, error)

	// Add stores a new record sealed under masterPassword.
	Add(ctx context.Context, fields models.PasswordFields, masterPassword string) (models.RecordView, error)

	// Get decrypts one record.
	Get(ctx context.Context, id, masterPassword string) (models.DecryptedRecord, error)

	// Update replaces the content of one record. masterPassword must open
	// the current version.
	Update(ctx context.Context, id string, fields models.PasswordFields, masterPassword string) (models.RecordView, error)

	// Delete removes one record.
	Delete(ctx context.Context, id string) error
}
