package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// Signer mints signed access tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// Sign serialises claims into a signed JWT with the kid header set.
func (k *Keypair) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = k.kid
	return t.SignedString(k.priv)
}
