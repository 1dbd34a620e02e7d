// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-locker/models"
	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of the per-record random salt.
	SaltSize = 16
	// KeySize is the AES-256 key length every envelope is sealed with.
	KeySize = 32

	maxArgonTime      = 64
	maxArgonMemoryKiB = 4 * 1024 * 1024 // 4 GiB
)

// argon2idDeriver is the Argon2id implementation of [KeyDeriver].
type argon2idDeriver struct{}

// NewKeyDeriver returns the Argon2id [KeyDeriver].
func NewKeyDeriver() KeyDeriver {
	return argon2idDeriver{}
}

// NewKDFParams builds Argon2id params for the given cost settings.
// The key length is always [KeySize].
func NewKDFParams(time, memoryKiB uint32, threads uint8) models.KDFParams {
	return models.KDFParams{
		Algorithm: models.KDFAlgorithmArgon2id,
		Time:      time,
		MemoryKiB: memoryKiB,
		Threads:   threads,
		KeyLen:    KeySize,
	}
}

// DefaultKDFParams follows the OWASP Argon2id baseline: 1 pass, 64 MiB, 4 lanes.
func DefaultKDFParams() models.KDFParams {
	return NewKDFParams(1, 64*1024, 4)
}

// ValidateKDFParams reports [ErrInvalidKDFParams] if params or salt cannot
// describe an envelope this package produced. Upper bounds keep a tampered
// record from forcing an unbounded derivation.
func ValidateKDFParams(params models.KDFParams, salt []byte) error {
	switch {
	case params.Algorithm != models.KDFAlgorithmArgon2id:
		return fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidKDFParams, params.Algorithm)
	case params.Time == 0 || params.Time > maxArgonTime:
		return fmt.Errorf("%w: time %d out of range", ErrInvalidKDFParams, params.Time)
	case params.Threads == 0:
		return fmt.Errorf("%w: zero threads", ErrInvalidKDFParams)
	case params.MemoryKiB < 8*uint32(params.Threads) || params.MemoryKiB > maxArgonMemoryKiB:
		return fmt.Errorf("%w: memory %d KiB out of range", ErrInvalidKDFParams, params.MemoryKiB)
	case params.KeyLen != KeySize:
		return fmt.Errorf("%w: key length %d", ErrInvalidKDFParams, params.KeyLen)
	case len(salt) == 0:
		return fmt.Errorf("%w: empty salt", ErrInvalidKDFParams)
	}

	return nil
}

// NewSalt reads [SaltSize] bytes from the OS CSPRNG.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return salt, nil
}

// Derive implements [KeyDeriver].
func (argon2idDeriver) Derive(masterPassword, salt []byte, params models.KDFParams) ([]byte, error) {
	if err := ValidateKDFParams(params, salt); err != nil {
		return nil, err
	}

	return argon2.IDKey(masterPassword, salt, params.Time, params.MemoryKiB, params.Threads, params.KeyLen), nil
}
