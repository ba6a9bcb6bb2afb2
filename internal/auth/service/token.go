package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/pkg/cryptox"
	"github.com/abuRizq/vegetable-shop/pkg/idx"
	"github.com/abuRizq/vegetable-shop/pkg/jwtx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

const DefaultRefreshTokenTTL = 7 * 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrInvalidResetToken  = errors.New("invalid_reset_token")
)

// TokenPair is what a successful login, registration, or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// TokenService mints EdDSA access tokens and manages opaque refresh tokens.
type TokenService struct {
	Signer     jwtx.Signer
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssuePair creates an access/refresh pair for a user. The refresh token is
// stored by fingerprint only.
func (s *TokenService) IssuePair(ctx context.Context, user domain.User) (*TokenPair, error) {
	now := time.Now().UTC()

	claims := jwtx.NewAccessClaims(
		user.ID, s.Issuer, user.Role.String(), user.Name, user.Email,
		s.AccessTTL, now,
	)
	access, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	record := domain.RefreshToken{
		ID:          idx.New().String(),
		UserID:      user.ID,
		Fingerprint: cryptox.FingerprintToken(refresh),
		ExpiresAt:   now.Add(s.RefreshTTL),
	}
	if err := s.Store.RefreshTokens().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// Rotate exchanges a refresh token for a fresh pair. The old token is revoked
// in the same transaction that records the new one. Presenting a previously
// revoked token is treated as theft and burns every live token the user holds.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (*TokenPair, domain.User, error) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()
	fp := cryptox.FingerprintToken(refreshToken)

	record, err := s.Store.RefreshTokens().GetByFingerprint(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.User{}, ErrInvalidRefresh
		}
		return nil, domain.User{}, err
	}

	if record.Revoked {
		log.Warn("revoked refresh token replayed, revoking user's tokens", "user_id", record.UserID)
		_ = s.Store.RefreshTokens().RevokeAllForUser(ctx, record.UserID)
		return nil, domain.User{}, ErrInvalidRefresh
	}
	if record.Expired(now) {
		return nil, domain.User{}, ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetByID(ctx, record.UserID)
	if err != nil {
		return nil, domain.User{}, err
	}

	newRefresh, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, domain.User{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().Revoke(ctx, fp); err != nil {
			return err
		}
		return tx.RefreshTokens().Create(ctx, domain.RefreshToken{
			ID:          idx.New().String(),
			UserID:      user.ID,
			Fingerprint: cryptox.FingerprintToken(newRefresh),
			ExpiresAt:   now.Add(s.RefreshTTL),
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost the race to another rotation of the same token.
			return nil, domain.User{}, ErrInvalidRefresh
		}
		return nil, domain.User{}, err
	}

	claims := jwtx.NewAccessClaims(
		user.ID, s.Issuer, user.Role.String(), user.Name, user.Email,
		s.AccessTTL, now,
	)
	access, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, domain.User{}, fmt.Errorf("sign access token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: newRefresh,
		ExpiresIn:    s.AccessTTL,
	}, user, nil
}

// RevokeAll burns every live refresh token for a user.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) error {
	return s.Store.RefreshTokens().RevokeAllForUser(ctx, userID)
}
