package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/internal/auth/store/drivers/sqlite"
	"github.com/abuRizq/vegetable-shop/pkg/cryptox"
	"github.com/abuRizq/vegetable-shop/pkg/idx"
)

func TestHousekeepingSweep(t *testing.T) {
	t.Parallel()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	ctx := context.Background()
	now := time.Now().UTC()

	hash, err := cryptox.HashPassword("hunter22")
	require.NoError(t, err)
	user := domain.User{
		ID:           idx.New().String(),
		Name:         "Sam",
		Email:        "sam@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	require.NoError(t, st.Users().Create(ctx, user))

	mkRefresh := func(expiresAt time.Time) {
		require.NoError(t, st.RefreshTokens().Create(ctx, domain.RefreshToken{
			ID:          idx.New().String(),
			UserID:      user.ID,
			Fingerprint: cryptox.FingerprintToken(idx.New().String()),
			ExpiresAt:   expiresAt,
		}))
	}
	mkReset := func(expiresAt time.Time) {
		require.NoError(t, st.ResetTokens().Create(ctx, domain.PasswordResetToken{
			ID:          idx.New().String(),
			UserID:      user.ID,
			Fingerprint: cryptox.FingerprintToken(idx.New().String()),
			ExpiresAt:   expiresAt,
		}))
	}

	mkRefresh(now.Add(-time.Hour)) // expired
	mkRefresh(now.Add(time.Hour))  // live
	mkReset(now.Add(-time.Hour))   // expired
	mkReset(now.Add(time.Hour))    // live

	svc := &HousekeepingService{
		Store:    st,
		Logger:   slog.Default(),
		Interval: time.Hour,
	}
	svc.Start()
	svc.Stop() // Start runs one sweep immediately

	deletedRefresh, err := st.RefreshTokens().DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Zero(t, deletedRefresh, "sweep already removed the expired refresh token")

	deletedReset, err := st.ResetTokens().DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Zero(t, deletedReset, "sweep already removed the expired reset token")

	// The live tokens survived.
	live, err := st.RefreshTokens().DeleteExpired(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), live)
}

var _ store.Store = (*sqlite.Store)(nil)
