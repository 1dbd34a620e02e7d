package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-pass-locker/models"
	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("crypto: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("crypto: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalEnvelope encodes an envelope into the opaque blob the stores persist.
func MarshalEnvelope(envelope models.Envelope) ([]byte, error) {
	data, err := encMode.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingEnvelope, err)
	}
	return data, nil
}

// UnmarshalEnvelope decodes a blob produced by [MarshalEnvelope].
func UnmarshalEnvelope(data []byte) (models.Envelope, error) {
	var envelope models.Envelope
	if err := decMode.Unmarshal(data, &envelope); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %w", ErrDecodingEnvelope, err)
	}
	return envelope, nil
}

// MarshalPayload encodes the secret part of a record before sealing.
func MarshalPayload(payload models.SecretPayload) ([]byte, error) {
	data, err := encMode.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	return data, nil
}

// UnmarshalPayload decodes an opened envelope plaintext.
func UnmarshalPayload(data []byte) (models.SecretPayload, error) {
	var payload models.SecretPayload
	if err := decMode.Unmarshal(data, &payload); err != nil {
		return models.SecretPayload{}, fmt.Errorf("%w: %w", ErrDecodingPayload, err)
	}
	return payload, nil
}
