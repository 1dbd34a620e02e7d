package service

import "errors"

// Vault error taxonomy. Nothing below the service leaves it unmapped.
var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else.
	ErrNotFound = errors.New("password entry not found")

	// ErrAuthenticationFailed covers both a wrong master password and a
	// corrupted or tampered envelope.
	ErrAuthenticationFailed = errors.New("wrong master password or record unavailable")

	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable is a storage outage or timeout. The caller may retry.
	ErrUnavailable = errors.New("service temporarily unavailable")

	// ErrInvalidParams is a key derivation or codec misconfiguration on
	// the server. It is not retryable and must reach operators.
	ErrInvalidParams = errors.New("invalid key derivation parameters")

	// ErrInternal is any other unexpected failure below the service.
	ErrInternal = errors.New("internal error")
)

var (
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)
