package store

import (
	"context"

	"github.com/MKhiriev/go-pass-locker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VaultStore persists vault records. Every operation is scoped by owner at
// the query level: a record that exists but belongs to someone else is
// reported as [ErrNotFound], exactly like a missing one.
//
// Failures the caller may retry are wrapped with [ErrUnavailable].
type VaultStore interface {
	// Create inserts a new record. It returns [ErrDuplicateID] when the id
	// is already taken.
	Create(ctx context.Context, record models.Record) error
	Get(ctx context.Context, ownerID, id string) (models.Record, error)
	// Update atomically replaces website, username, envelope and updated_at
	// of an owned record.
	Update(ctx context.Context, record models.Record) error
	Delete(ctx context.Context, ownerID, id string) error
	// Search matches query as a case-insensitive substring of website or
	// username. Results are ordered by creation time, then id.
	Search(ctx context.Context, ownerID, query string) ([]models.RecordView, error)
	ListAll(ctx context.Context, ownerID string) ([]models.RecordView, error)
	Ping(ctx context.Context) error
}
