package models

// EnvelopeVersion is the only envelope layout currently produced and accepted.
const EnvelopeVersion uint8 = 1

// KDFAlgorithmArgon2id names the only supported key derivation function.
const KDFAlgorithmArgon2id = "argon2id"

// KDFParams describes how the sealing key of an envelope was derived.
// They travel with the envelope so changing defaults never invalidates
// already stored records.
type KDFParams struct {
	Algorithm string `cbor:"1,keyasint"`
	Time      uint32 `cbor:"2,keyasint"`
	MemoryKiB uint32 `cbor:"3,keyasint"`
	Threads   uint8  `cbor:"4,keyasint"`
	KeyLen    uint32 `cbor:"5,keyasint"`
}

// Envelope is the self-contained sealed form of a record secret.
// It carries everything needed to open it except the master password.
type Envelope struct {
	Version    uint8     `cbor:"1,keyasint"`
	Salt       []byte    `cbor:"2,keyasint"`
	Nonce      []byte    `cbor:"3,keyasint"`
	Ciphertext []byte    `cbor:"4,keyasint"`
	AuthTag    []byte    `cbor:"5,keyasint"`
	KDFParams  KDFParams `cbor:"6,keyasint"`
}
