package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abuRizq/vegetable-shop/pkg/jwtx"
)

// initSigningKey loads the Ed25519 signing key from cfg.KeyFile, or generates
// an ephemeral one when no file is configured. Ephemeral keys invalidate all
// outstanding access tokens on restart, which is fine for dev.
func initSigningKey(cfg Config, logger *slog.Logger) (*jwtx.Keypair, error) {
	if cfg.KeyFile == "" {
		kp, err := jwtx.GenerateKeypair()
		if err != nil {
			return nil, fmt.Errorf("generating ephemeral signing key: %w", err)
		}
		logger.Warn("no AUTH_KEY_FILE configured, using ephemeral signing key", "kid", kp.KID())
		return kp, nil
	}

	pemBytes, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("reading signing key %s: %w", cfg.KeyFile, err)
	}
	kp, err := jwtx.LoadKeypairPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing signing key %s: %w", cfg.KeyFile, err)
	}

	logger.Info("signing key loaded", "kid", kp.KID())
	return kp, nil
}
