package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abuRizq/vegetable-shop/pkg/shopsdk"
)

// TestSessionOutlivesAccessToken runs the stack with a 2-second access token
// and checks the session stays alive well past it: the gateway rotates the
// refresh cookie into a fresh pair whenever /me sees an expired token.
func TestSessionOutlivesAccessToken(t *testing.T) {
	baseURL, cleanup := setupStackWithShortTokens(t)
	defer cleanup()

	ctx := context.Background()
	email := uniqueEmail()

	store := shopsdk.NewSessionStore(shopsdk.NewClient(baseURL))
	_, err := store.Register(ctx, shopperName, email, shopperPassword)
	require.NoError(t, err)

	// Two renewal rounds, each past both the token TTL and the verdict cache.
	for round := 0; round < 2; round++ {
		time.Sleep(3 * time.Second)

		require.NoError(t, store.Refresh(ctx))
		require.True(t, store.IsAuthenticated(), "round %d: session should have renewed", round)
		require.Equal(t, email, store.CurrentUser().Email)
	}

	// Logout still tears everything down cleanly.
	require.NoError(t, store.Logout(ctx))
	require.NoError(t, store.Refresh(ctx))
	require.False(t, store.IsAuthenticated())
}
