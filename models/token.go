package models

import "github.com/golang-jwt/jwt/v5"

// Token wraps a JWT with the parsed vault owner.
//
// OwnerID is a cached copy of the "sub" claim. The vault treats it as an
// opaque string and never interprets its format.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form (header.payload.signature).
	SignedString string `json:"-"`

	OwnerID string `json:"-"`
}
