package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abuRizq/vegetable-shop/pkg/shopsdk"
)

// TestRegisterLoginLogout walks a shopper through the full account lifecycle:
// register, leave, come back, log in, and log out again.
func TestRegisterLoginLogout(t *testing.T) {
	baseURL, cleanup := setupStack(t)
	defer cleanup()

	ctx := context.Background()
	email := uniqueEmail()

	store := shopsdk.NewSessionStore(shopsdk.NewClient(baseURL))

	// Fresh browser: nothing loaded, nobody signed in.
	require.False(t, store.Loaded())
	require.False(t, store.IsAuthenticated())
	require.Equal(t, "Guest", store.DisplayName())

	user, err := store.Register(ctx, shopperName, email, shopperPassword)
	require.NoError(t, err)
	require.Equal(t, email, user.Email)
	require.Equal(t, shopsdk.RoleUser, user.Role)

	require.True(t, store.IsAuthenticated())
	require.Equal(t, shopperName, store.DisplayName())
	require.Equal(t, "SS", store.Initials())

	err = store.Logout(ctx)
	require.NoError(t, err)
	require.False(t, store.IsAuthenticated())
	require.Equal(t, "Guest", store.DisplayName())

	// Logging out revoked the cookie: a fresh fetch settles logged out.
	require.NoError(t, store.Refresh(ctx))
	require.False(t, store.IsAuthenticated())

	_, err = store.Login(ctx, email, shopperPassword)
	require.NoError(t, err)
	require.True(t, store.IsAuthenticated())
}

// TestLoginRejectsBadCredentials checks that the backend's credential error
// passes through the gateway to the SDK word for word.
func TestLoginRejectsBadCredentials(t *testing.T) {
	baseURL, cleanup := setupStack(t)
	defer cleanup()

	ctx := context.Background()
	email := uniqueEmail()
	registerShopper(t, baseURL, email)

	store := shopsdk.NewSessionStore(shopsdk.NewClient(baseURL))

	_, err := store.Login(ctx, email, "not-the-password")
	require.Error(t, err)

	var apiErr *shopsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
	require.Equal(t, "invalid credentials", apiErr.Message)
	require.False(t, store.IsAuthenticated())

	_, err = store.Login(ctx, "nobody@example.com", shopperPassword)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "invalid credentials", apiErr.Message)
}

// TestRegisterRejectsDuplicateEmail verifies account creation conflicts
// surface as client errors rather than silent overwrites.
func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	baseURL, cleanup := setupStack(t)
	defer cleanup()

	ctx := context.Background()
	email := uniqueEmail()
	registerShopper(t, baseURL, email)

	store := shopsdk.NewSessionStore(shopsdk.NewClient(baseURL))

	_, err := store.Register(ctx, "Someone Else", email, shopperPassword)
	require.Error(t, err)

	var apiErr *shopsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 409, apiErr.StatusCode)
	require.False(t, store.IsAuthenticated())
}
