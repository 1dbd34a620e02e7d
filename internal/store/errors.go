package store

import "errors"

// Sentinel errors returned by every [VaultStore] backend. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the record does not exist or is owned by
	// someone else.
	ErrNotFound = errors.New("vault record not found")

	// ErrDuplicateID is returned by Create when the record id is taken.
	ErrDuplicateID = errors.New("vault record id already exists")

	// ErrUnavailable wraps transient backend failures (lost connection,
	// deadlock, timeout). Operations failing with it may be retried.
	ErrUnavailable = errors.New("vault store unavailable")

	// ErrCorruptedRecord is returned when a stored envelope cannot be decoded.
	ErrCorruptedRecord = errors.New("vault record is corrupted")

	// ErrUnknownDriver is returned by [NewStorages] for an unsupported driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors, wrapped together with the driver error.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan vault record row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan vault record rows")

	// ErrConnecting is returned when a backend cannot be reached at startup.
	ErrConnecting = errors.New("error connecting to storage")
)
