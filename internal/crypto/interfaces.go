package crypto

import "github.com/MKhiriev/go-pass-locker/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver turns a master password into a symmetric sealing key.
//
// Derive is deterministic: the same password, salt and params always give the
// same key. A wrong password is not an error here, it simply yields a key that
// will fail to open the envelope. Callers must [Zero] the returned key once
// they are done with it.
type KeyDeriver interface {
	Derive(masterPassword, salt []byte, params models.KDFParams) ([]byte, error)
}

// EnvelopeCodec seals plaintext into self-describing envelopes and opens them.
//
// Seal always draws a fresh random nonce. Open reports every failure (wrong
// key, tampered bytes, unsupported version) as [ErrAuthenticationFailed].
type EnvelopeCodec interface {
	Seal(key, salt []byte, params models.KDFParams, plaintext []byte) (models.Envelope, error)
	Open(key []byte, envelope models.Envelope) ([]byte, error)
}
