package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/MKhiriev/go-pass-locker/models"
)

// fastParams keeps Argon2id cheap enough for unit tests.
func fastParams() models.KDFParams {
	return NewKDFParams(1, 64, 1)
}

func TestNewSalt_LengthAndRandomness(t *testing.T) {
	s1, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error: %v", err)
	}
	s2, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error: %v", err)
	}

	if len(s1) != SaltSize || len(s2) != SaltSize {
		t.Fatalf("salt lengths = %d/%d, want %d", len(s1), len(s2), SaltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestDerive_DeterministicForSameInputs(t *testing.T) {
	deriver := NewKeyDeriver()
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1, err := deriver.Derive([]byte("Tr0ub4dor&3"), salt, fastParams())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	k2, err := deriver.Derive([]byte("Tr0ub4dor&3"), salt, fastParams())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	if len(k1) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected identical keys for identical inputs")
	}
}

func TestDerive_DiffersByPasswordAndSalt(t *testing.T) {
	deriver := NewKeyDeriver()
	salt := bytes.Repeat([]byte{0x01}, SaltSize)
	otherSalt := bytes.Repeat([]byte{0x02}, SaltSize)

	base, err := deriver.Derive([]byte("Tr0ub4dor&3"), salt, fastParams())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	wrongPassword, err := deriver.Derive([]byte("wrong"), salt, fastParams())
	if err != nil {
		t.Fatalf("wrong password must not error at derivation: %v", err)
	}
	otherSaltKey, err := deriver.Derive([]byte("Tr0ub4dor&3"), otherSalt, fastParams())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	if bytes.Equal(base, wrongPassword) {
		t.Fatalf("different passwords produced the same key")
	}
	if bytes.Equal(base, otherSaltKey) {
		t.Fatalf("different salts produced the same key")
	}
}

func TestValidateKDFParams(t *testing.T) {
	salt := []byte("0123456789abcdef")

	tests := []struct {
		name    string
		mutate  func(p *models.KDFParams)
		salt    []byte
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(p *models.KDFParams) { *p = DefaultKDFParams() }, salt: salt},
		{name: "fast test params are valid", mutate: func(p *models.KDFParams) {}, salt: salt},
		{name: "unknown algorithm", mutate: func(p *models.KDFParams) { p.Algorithm = "scrypt" }, salt: salt, wantErr: true},
		{name: "zero time", mutate: func(p *models.KDFParams) { p.Time = 0 }, salt: salt, wantErr: true},
		{name: "excessive time", mutate: func(p *models.KDFParams) { p.Time = 1000 }, salt: salt, wantErr: true},
		{name: "zero threads", mutate: func(p *models.KDFParams) { p.Threads = 0 }, salt: salt, wantErr: true},
		{name: "memory below 8 KiB per lane", mutate: func(p *models.KDFParams) { p.Threads = 4; p.MemoryKiB = 16 }, salt: salt, wantErr: true},
		{name: "excessive memory", mutate: func(p *models.KDFParams) { p.MemoryKiB = 1 << 30 }, salt: salt, wantErr: true},
		{name: "short key", mutate: func(p *models.KDFParams) { p.KeyLen = 16 }, salt: salt, wantErr: true},
		{name: "empty salt", mutate: func(p *models.KDFParams) {}, salt: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := fastParams()
			tt.mutate(&params)

			err := ValidateKDFParams(params, tt.salt)
			if tt.wantErr && !errors.Is(err, ErrInvalidKDFParams) {
				t.Fatalf("expected ErrInvalidKDFParams, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDerive_RejectsInvalidParams(t *testing.T) {
	params := fastParams()
	params.Algorithm = "pbkdf2"

	_, err := NewKeyDeriver().Derive([]byte("pw"), []byte("salt"), params)
	if !errors.Is(err, ErrInvalidKDFParams) {
		t.Fatalf("expected ErrInvalidKDFParams, got %v", err)
	}
}

func TestZero(t *testing.T) {
	b := []byte("secret")
	Zero(b)
	if !bytes.Equal(b, make([]byte, 6)) {
		t.Fatalf("expected zeroed slice, got %v", b)
	}
	Zero(nil)
}
