package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/MKhiriev/go-pass-locker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingReader always returns an error, simulating an exhausted CSPRNG.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeySize)
}

func sealTestEnvelope(t *testing.T, key []byte, plaintext []byte) models.Envelope {
	t.Helper()
	env, err := NewEnvelopeCodec().Seal(key, []byte("0123456789abcdef"), fastParams(), plaintext)
	require.NoError(t, err)
	return env
}

// ─────────────────────────────────────────────────────────────────────────────
// Seal / Open
// ─────────────────────────────────────────────────────────────────────────────

func TestSealOpen_RoundTrip(t *testing.T) {
	codec := NewEnvelopeCodec()
	key := testKey(0x11)
	env := sealTestEnvelope(t, key, []byte("Sup3r$ecret1"))

	assert.Equal(t, models.EnvelopeVersion, env.Version)
	assert.Len(t, env.Nonce, nonceSize)
	assert.Len(t, env.AuthTag, tagSize)
	assert.Equal(t, fastParams(), env.KDFParams)
	assert.NotContains(t, string(env.Ciphertext), "Sup3r$ecret1")

	plaintext, err := codec.Open(key, env)
	require.NoError(t, err)
	assert.Equal(t, "Sup3r$ecret1", string(plaintext))
}

func TestSeal_IsNonDeterministic(t *testing.T) {
	key := testKey(0x22)
	e1 := sealTestEnvelope(t, key, []byte("same"))
	e2 := sealTestEnvelope(t, key, []byte("same"))

	assert.NotEqual(t, e1.Nonce, e2.Nonce)
	assert.NotEqual(t, e1.Ciphertext, e2.Ciphertext)
}

func TestSeal_RejectsBadKeyLength(t *testing.T) {
	_, err := NewEnvelopeCodec().Seal([]byte("short"), []byte("salt"), fastParams(), []byte("x"))
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestSeal_RandomSourceFailure(t *testing.T) {
	codec := &aesGCMCodec{random: failingReader{}}
	_, err := codec.Seal(testKey(0x01), []byte("salt"), fastParams(), []byte("x"))
	require.ErrorIs(t, err, ErrRandomSource)
}

func TestOpen_FailsAuthentication(t *testing.T) {
	key := testKey(0x33)

	tests := []struct {
		name   string
		key    []byte
		mutate func(e *models.Envelope)
	}{
		{name: "wrong key", key: testKey(0x34), mutate: func(e *models.Envelope) {}},
		{name: "tampered ciphertext", key: key, mutate: func(e *models.Envelope) { e.Ciphertext[0] ^= 0xFF }},
		{name: "tampered tag", key: key, mutate: func(e *models.Envelope) { e.AuthTag[0] ^= 0xFF }},
		{name: "tampered nonce", key: key, mutate: func(e *models.Envelope) { e.Nonce[0] ^= 0xFF }},
		{name: "swapped salt", key: key, mutate: func(e *models.Envelope) { e.Salt = []byte("fedcba9876543210") }},
		{name: "swapped params", key: key, mutate: func(e *models.Envelope) { e.KDFParams.Time = 2 }},
		{name: "unsupported version", key: key, mutate: func(e *models.Envelope) { e.Version = 9 }},
		{name: "short nonce", key: key, mutate: func(e *models.Envelope) { e.Nonce = e.Nonce[:4] }},
		{name: "missing tag", key: key, mutate: func(e *models.Envelope) { e.AuthTag = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := sealTestEnvelope(t, key, []byte("Sup3r$ecret1"))
			tt.mutate(&env)

			plaintext, err := NewEnvelopeCodec().Open(tt.key, env)
			require.ErrorIs(t, err, ErrAuthenticationFailed)
			assert.Nil(t, plaintext)
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// CBOR wire format
// ─────────────────────────────────────────────────────────────────────────────

func TestMarshalEnvelope_SurvivesStorage(t *testing.T) {
	codec := NewEnvelopeCodec()
	key := testKey(0x44)
	env := sealTestEnvelope(t, key, []byte("payload"))

	blob, err := MarshalEnvelope(env)
	require.NoError(t, err)

	again, err := MarshalEnvelope(env)
	require.NoError(t, err)
	assert.Equal(t, blob, again, "encoding must be deterministic")

	decoded, err := UnmarshalEnvelope(blob)
	require.NoError(t, err)

	plaintext, err := codec.Open(key, decoded)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plaintext))
}

func TestUnmarshalEnvelope_RejectsGarbage(t *testing.T) {
	_, err := UnmarshalEnvelope([]byte{0xFF, 0x00, 0x13})
	require.ErrorIs(t, err, ErrDecodingEnvelope)
}

func TestPayload_EncodeDecode(t *testing.T) {
	data, err := MarshalPayload(models.SecretPayload{Password: "Sup3r$ecret1", Notes: "work account"})
	require.NoError(t, err)

	payload, err := UnmarshalPayload(data)
	require.NoError(t, err)
	assert.Equal(t, "Sup3r$ecret1", payload.Password)
	assert.Equal(t, "work account", payload.Notes)

	_, err = UnmarshalPayload([]byte("not cbor"))
	require.ErrorIs(t, err, ErrDecodingPayload)
}
