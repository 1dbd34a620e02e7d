package service

import (
	"context"

	"github.com/MKhiriev/go-pass-locker/models"
)

// VaultService is the credential vault. Every call is scoped by the
// verified owner id; sensitive calls additionally take the master password,
// which is never stored.
type VaultService interface {
	AddPassword(ctx context.Context, ownerID string, fields models.PasswordFields, masterPassword string) (models.RecordView, error)
	GetPassword(ctx context.Context, ownerID, id, masterPassword string) (models.DecryptedRecord, error)
	// UpdatePassword verifies masterPassword against the current envelope
	// before sealing the new content under a fresh salt.
	UpdatePassword(ctx context.Context, ownerID, id string, fields models.PasswordFields, masterPassword string) (models.RecordView, error)
	DeletePassword(ctx context.Context, ownerID, id string) error
	// Search returns every owned record whose website or username contains
	// query, ignoring case. An empty query lists everything.
	Search(ctx context.Context, ownerID, query string) ([]models.RecordView, error)
	ListAll(ctx context.Context, ownerID string) ([]models.RecordView, error)
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}

// IdentityService resolves the caller of a request from its bearer token.
type IdentityService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the vault can currently serve requests.
type HealthService interface {
	Check(ctx context.Context) error
}

// idGenerator mints record ids.
type idGenerator interface {
	Generate() string
}
