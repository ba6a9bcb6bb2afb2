package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/internal/auth/store/drivers/sqlite"
	"github.com/abuRizq/vegetable-shop/pkg/cryptox"
	"github.com/abuRizq/vegetable-shop/pkg/idx"
	"github.com/abuRizq/vegetable-shop/pkg/jwtx"
)

func newTokenService(t *testing.T) (*TokenService, *jwtx.Keypair, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	kp, err := jwtx.GenerateKeypair()
	require.NoError(t, err)

	return &TokenService{
		Signer:     kp,
		Store:      st,
		Issuer:     "test-issuer",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}, kp, st
}

func createUser(t *testing.T, st store.Store) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("hunter22")
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		Name:         "Sam Greengrocer",
		Email:        "sam@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	require.NoError(t, st.Users().Create(context.Background(), user))
	return user
}

func TestTokenServiceIssuePair(t *testing.T) {
	t.Parallel()

	svc, kp, st := newTokenService(t)
	user := createUser(t, st)

	pair, err := svc.IssuePair(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, 15*time.Minute, pair.ExpiresIn)

	// The access token verifies and carries the user's identity.
	verifier := jwtx.NewVerifier(kp, "test-issuer")
	claims, err := verifier.Verify(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, "USER", claims.Role)
	require.Equal(t, "sam@example.com", claims.Email)

	// Only the fingerprint hits the database.
	stored, err := st.RefreshTokens().GetByFingerprint(
		context.Background(), cryptox.FingerprintToken(pair.RefreshToken))
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.UserID)
	require.NotEqual(t, pair.RefreshToken, stored.Fingerprint)
}

func TestTokenServiceRotate(t *testing.T) {
	t.Parallel()

	t.Run("rotation swaps tokens", func(t *testing.T) {
		t.Parallel()

		svc, _, st := newTokenService(t)
		user := createUser(t, st)
		ctx := context.Background()

		pair, err := svc.IssuePair(ctx, user)
		require.NoError(t, err)

		rotated, rotatedUser, err := svc.Rotate(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, rotatedUser.ID)
		require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

		// The old token is spent.
		_, _, err = svc.Rotate(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)

		// The new one still works.
		_, _, err = svc.Rotate(ctx, rotated.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTokenService(t)
		_, _, err := svc.Rotate(context.Background(), "never-issued")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("replay of a revoked token kills the whole family", func(t *testing.T) {
		t.Parallel()

		svc, _, st := newTokenService(t)
		user := createUser(t, st)
		ctx := context.Background()

		first, err := svc.IssuePair(ctx, user)
		require.NoError(t, err)

		second, _, err := svc.Rotate(ctx, first.RefreshToken)
		require.NoError(t, err)

		// Replaying the spent token looks like theft: every live token of
		// the user is revoked, including the fresh one.
		_, _, err = svc.Rotate(ctx, first.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)

		_, _, err = svc.Rotate(ctx, second.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		t.Parallel()

		svc, _, st := newTokenService(t)
		user := createUser(t, st)
		ctx := context.Background()

		svc.RefreshTTL = -time.Minute // already expired at issue time
		pair, err := svc.IssuePair(ctx, user)
		require.NoError(t, err)

		_, _, err = svc.Rotate(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestTokenServiceRevokeAll(t *testing.T) {
	t.Parallel()

	svc, _, st := newTokenService(t)
	user := createUser(t, st)
	ctx := context.Background()

	a, err := svc.IssuePair(ctx, user)
	require.NoError(t, err)
	b, err := svc.IssuePair(ctx, user)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(ctx, user.ID))

	_, _, err = svc.Rotate(ctx, a.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
	_, _, err = svc.Rotate(ctx, b.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}
