// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-locker/models"
)

const (
	nonceSize = 12
	tagSize   = 16
)

// aesGCMCodec is the AES-256-GCM implementation of [EnvelopeCodec].
//
// The additional authenticated data is the deterministic CBOR encoding of the
// envelope header (version, salt, KDF params), so an envelope whose params or
// salt were swapped fails to open even with the right key.
type aesGCMCodec struct {
	random io.Reader
}

// NewEnvelopeCodec returns the AES-256-GCM [EnvelopeCodec].
func NewEnvelopeCodec() EnvelopeCodec {
	return &aesGCMCodec{random: rand.Reader}
}

// envelopeHeader is the part of an envelope bound as AAD.
type envelopeHeader struct {
	Version   uint8            `cbor:"1,keyasint"`
	Salt      []byte           `cbor:"2,keyasint"`
	KDFParams models.KDFParams `cbor:"3,keyasint"`
}

func (c *aesGCMCodec) Seal(key, salt []byte, params models.KDFParams, plaintext []byte) (models.Envelope, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return models.Envelope{}, err
	}

	nonce := make([]byte, nonceSize)
	if _, err = io.ReadFull(c.random, nonce); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	envelope := models.Envelope{
		Version:   models.EnvelopeVersion,
		Salt:      append([]byte(nil), salt...),
		Nonce:     nonce,
		KDFParams: params,
	}

	aad, err := additionalData(envelope)
	if err != nil {
		return models.Envelope{}, err
	}

	sealed := gcm.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - tagSize
	envelope.Ciphertext = sealed[:split:split]
	envelope.AuthTag = sealed[split:]

	return envelope, nil
}

func (c *aesGCMCodec) Open(key []byte, envelope models.Envelope) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if envelope.Version != models.EnvelopeVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrAuthenticationFailed, envelope.Version)
	}
	if len(envelope.Nonce) != nonceSize || len(envelope.AuthTag) != tagSize {
		return nil, fmt.Errorf("%w: malformed envelope", ErrAuthenticationFailed)
	}

	aad, err := additionalData(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	sealed := make([]byte, 0, len(envelope.Ciphertext)+tagSize)
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.AuthTag...)

	plaintext, err := gcm.Open(nil, envelope.Nonce, sealed, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return cipher.NewGCMWithNonceSize(block, nonceSize)
}

func additionalData(envelope models.Envelope) ([]byte, error) {
	return encMode.Marshal(envelopeHeader{
		Version:   envelope.Version,
		Salt:      envelope.Salt,
		KDFParams: envelope.KDFParams,
	})
}
