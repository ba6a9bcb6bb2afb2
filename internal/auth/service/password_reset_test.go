package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// captureMailer records tokens instead of sending them anywhere.
type captureMailer struct {
	mu     sync.Mutex
	tokens []string
	emails []string
}

func (m *captureMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = append(m.emails, email)
	m.tokens = append(m.tokens, token)
	return nil
}

func (m *captureMailer) last(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.tokens)
	return m.tokens[len(m.tokens)-1]
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

func newResetService(t *testing.T) (*PasswordResetService, *AuthService, *TokenService, *captureMailer) {
	t.Helper()

	auth, tokens, st := newTestServices(t)
	mailer := &captureMailer{}
	reset := &PasswordResetService{
		Store:  st,
		Mailer: mailer,
	}
	return reset, auth, tokens, mailer
}

func TestPasswordResetRequest(t *testing.T) {
	t.Parallel()

	reset, auth, _, mailer := newResetService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "Sam Greengrocer", "sam@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("known email gets a token", func(t *testing.T) {
		require.NoError(t, reset.Request(ctx, "sam@example.com"))
		require.Equal(t, 1, mailer.count())
		require.Equal(t, "sam@example.com", mailer.emails[0])
	})

	t.Run("unknown email is silently accepted", func(t *testing.T) {
		require.NoError(t, reset.Request(ctx, "nobody@example.com"))
		require.Equal(t, 1, mailer.count(), "no mail for unknown accounts")
	})
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	reset, auth, tokens, mailer := newResetService(t)
	ctx := context.Background()

	_, pair, err := auth.Register(ctx, "Sam Greengrocer", "sam@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, reset.Request(ctx, "sam@example.com"))
	token := mailer.last(t)

	require.NoError(t, reset.Reset(ctx, token, "new-password-9"))

	t.Run("new password works, old one does not", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "sam@example.com", "new-password-9")
		require.NoError(t, err)

		_, _, err = auth.Login(ctx, "sam@example.com", "hunter22")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("existing sessions are revoked", func(t *testing.T) {
		_, _, err := tokens.Rotate(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("token is single use", func(t *testing.T) {
		err := reset.Reset(ctx, token, "another-password-3")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})
}

func TestPasswordResetInvalidTokens(t *testing.T) {
	t.Parallel()

	reset, auth, _, mailer := newResetService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "Sam Greengrocer", "sam@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("unknown token", func(t *testing.T) {
		err := reset.Reset(ctx, "never-issued", "new-password-9")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("expired token", func(t *testing.T) {
		reset.TokenTTL = -time.Minute
		require.NoError(t, reset.Request(ctx, "sam@example.com"))

		err := reset.Reset(ctx, mailer.last(t), "new-password-9")
		require.ErrorIs(t, err, ErrInvalidResetToken)
	})
}

func TestLogMailer(t *testing.T) {
	t.Parallel()

	m := &LogMailer{Logger: slog.Default()}
	require.NoError(t, m.SendPasswordReset(context.Background(), "sam@example.com", "tok"))
}
