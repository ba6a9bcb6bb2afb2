// Package jwtx wraps github.com/golang-jwt/jwt/v5 with the small, fixed token
// policy this project needs: Ed25519-signed access tokens, issuer and expiry
// enforcement, and a kid header so keys can be swapped without a flag day.
package jwtx

import (
	"errors"
	"time"
)

// DefaultAccessTokenTTL is the lifetime of access tokens. Short-lived on
// purpose; long-lived state belongs to the refresh token.
const DefaultAccessTokenTTL = 15 * time.Minute

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)
