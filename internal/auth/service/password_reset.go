package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/pkg/cryptox"
	"github.com/abuRizq/vegetable-shop/pkg/idx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

const DefaultResetTokenTTL = 30 * time.Minute

// Mailer delivers password-reset tokens. The production implementation is an
// email sender; dev and tests use LogMailer.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer writes the reset token to the log instead of sending mail.
// Dev-only; anyone who can read the logs can reset any account.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.Logger.Info("password reset requested", "email", email, "token", token)
	return nil
}

// PasswordResetService implements the forgot/reset password flow.
type PasswordResetService struct {
	Store    store.Store
	Mailer   Mailer
	TokenTTL time.Duration
}

// Request mints a single-use reset token for the account, if it exists, and
// hands it to the mailer. An unknown email is not an error: the endpoint
// answers identically either way to avoid account enumeration.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return err
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}

	record := domain.PasswordResetToken{
		ID:          idx.New().String(),
		UserID:      user.ID,
		Fingerprint: cryptox.FingerprintToken(token),
		ExpiresAt:   time.Now().UTC().Add(ttl),
	}
	if err := s.Store.ResetTokens().Create(ctx, record); err != nil {
		return err
	}

	return s.Mailer.SendPasswordReset(ctx, user.Email, token)
}

// Reset consumes a reset token and replaces the user's password. All live
// refresh tokens are revoked in the same transaction, so stolen sessions die
// with the old password.
func (s *PasswordResetService) Reset(ctx context.Context, token, newPassword string) error {
	now := time.Now().UTC()

	record, err := s.Store.ResetTokens().GetByFingerprint(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if !record.Usable(now) {
		return ErrInvalidResetToken
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ResetTokens().MarkUsed(ctx, record.ID); err != nil {
			return err
		}
		if err := tx.Users().UpdatePasswordHash(ctx, record.UserID, hash); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllForUser(ctx, record.UserID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token consumed by a concurrent reset.
			return ErrInvalidResetToken
		}
		return err
	}

	slogx.FromContext(ctx).Info("password reset completed", "user_id", record.UserID)
	return nil
}
