// Package workers bounds the CPU- and memory-heavy work of the vault.
//
// Key derivation is deliberately expensive, so unbounded parallel requests
// could exhaust the host. A pool admits at most N derivations at once and
// queues the rest until a slot frees up or the caller's context ends.
package workers

import (
	"context"

	"github.com/MKhiriev/go-pass-locker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// KDFPool runs key derivations with bounded concurrency.
//
// Derive blocks while the pool is saturated and returns ctx.Err() if the
// context ends before a slot is acquired.
type KDFPool interface {
	Derive(ctx context.Context, masterPassword, salt []byte, params models.KDFParams) ([]byte, error)
	Size() int
}
