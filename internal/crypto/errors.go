package crypto

import "errors"

var (
	ErrInvalidKDFParams     = errors.New("invalid key derivation params")
	ErrInvalidKey           = errors.New("invalid sealing key")
	ErrAuthenticationFailed = errors.New("envelope authentication failed")
	ErrRandomSource         = errors.New("error reading random bytes")
	ErrEncodingEnvelope     = errors.New("error encoding envelope")
	ErrDecodingEnvelope     = errors.New("error decoding envelope")
	ErrEncodingPayload      = errors.New("error encoding secret payload")
	ErrDecodingPayload      = errors.New("error decoding secret payload")
)
