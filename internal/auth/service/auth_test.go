package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/internal/auth/store/drivers/sqlite"
	"github.com/abuRizq/vegetable-shop/pkg/jwtx"
)

func newTestServices(t *testing.T) (*AuthService, *TokenService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	kp, err := jwtx.GenerateKeypair()
	require.NoError(t, err)

	tokens := &TokenService{
		Signer:     kp,
		Store:      st,
		Issuer:     "test-issuer",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	auth := &AuthService{Store: st, Tokens: tokens}
	return auth, tokens, st
}

func TestAuthServiceRegister(t *testing.T) {
	t.Parallel()

	auth, _, st := newTestServices(t)
	ctx := context.Background()

	user, pair, err := auth.Register(ctx, "Sam Greengrocer", "Sam@Example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, domain.RoleUser, user.Role)
	require.Equal(t, "sam@example.com", user.Email, "email stored lowercased")
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// Password hash never equals the password and is a PHC string.
	stored, err := st.Users().GetByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", stored.PasswordHash)
	require.Contains(t, stored.PasswordHash, "$argon2id$")

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := auth.Register(ctx, "Imposter", "sam@example.com", "different1")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("duplicate email case-insensitive", func(t *testing.T) {
		_, _, err := auth.Register(ctx, "Imposter", "SAM@EXAMPLE.COM", "different1")
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	auth, _, _ := newTestServices(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "Sam Greengrocer", "sam@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		user, pair, err := auth.Login(ctx, "sam@example.com", "hunter22")
		require.NoError(t, err)
		require.Equal(t, "Sam Greengrocer", user.Name)
		require.NotEmpty(t, pair.AccessToken)
	})

	t.Run("email is normalized", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "  SAM@example.com ", "hunter22")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "sam@example.com", "wrong-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gives the same error", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "nobody@example.com", "hunter22")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	t.Parallel()

	auth, tokens, _ := newTestServices(t)
	ctx := context.Background()

	user, pair, err := auth.Register(ctx, "Sam Greengrocer", "sam@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, user.ID))

	// The refresh token died with the session.
	_, _, err = tokens.Rotate(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	// Logging out twice is fine.
	require.NoError(t, auth.Logout(ctx, user.ID))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	require.Equal(t, "sam@example.com", NormalizeEmail(" Sam@Example.COM "))
	require.Equal(t, "a@b.co", NormalizeEmail("a@b.co"))
}
