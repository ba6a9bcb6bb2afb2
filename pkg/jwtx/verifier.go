package jwtx

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and returns its claims when it checks out.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// KeyVerifier validates tokens against a single keypair and an expected issuer.
type KeyVerifier struct {
	keys   *Keypair
	issuer string
}

// NewVerifier builds a verifier for tokens signed by keys with issuer iss.
func NewVerifier(keys *Keypair, issuer string) *KeyVerifier {
	return &KeyVerifier{keys: keys, issuer: issuer}
}

// Verify parses and validates the token: EdDSA only, matching kid, issuer,
// and exp/nbf window.
func (v *KeyVerifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrMalformed
		}
		if kid != v.keys.kid {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return ed25519.PublicKey(v.keys.pub), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(time.Now().UTC()); err != nil {
		return nil, err
	}

	return claims, nil
}
