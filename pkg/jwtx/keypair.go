package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

// Keypair holds an Ed25519 signing key and the kid derived from its public half.
type Keypair struct {
	kid  string
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// GenerateKeypair creates a fresh ephemeral Ed25519 keypair. Tokens signed
// with it do not survive a restart, which is acceptable for dev setups.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
	}
	return &Keypair{kid: deriveKID(pub), priv: priv, pub: pub}, nil
}

// LoadKeypairPEM parses a PKCS8-encoded Ed25519 private key.
func LoadKeypairPEM(pemBytes []byte) (*Keypair, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY block, got %q", block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}
	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not an Ed25519 private key")
	}

	pub := priv.Public().(ed25519.PublicKey)
	return &Keypair{kid: deriveKID(pub), priv: priv, pub: pub}, nil
}

// MarshalPEM serialises the private key as PKCS8 PEM, for persisting a
// generated key to disk.
func (k *Keypair) MarshalPEM() ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(k.priv)
	if err != nil {
		return nil, fmt.Errorf("jwtx: marshal PKCS8: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// KID returns the key identifier placed in token headers.
func (k *Keypair) KID() string { return k.kid }

// deriveKID fingerprints the public key so the kid is stable for a given key
// without any registry.
func deriveKID(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return base64.RawURLEncoding.EncodeToString(sum[:8])
}
