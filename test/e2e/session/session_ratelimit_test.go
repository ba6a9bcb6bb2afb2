package session_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abuRizq/vegetable-shop/pkg/shopsdk"
)

// TestLoginRateLimited hammers the login endpoint past the strict per-IP
// budget and expects a throttled response before the attempts run out.
func TestLoginRateLimited(t *testing.T) {
	baseURL, cleanup := setupStack(t)
	defer cleanup()

	ctx := context.Background()
	email := uniqueEmail()
	registerShopper(t, baseURL, email)

	client := shopsdk.NewClient(baseURL)

	throttled := false
	for i := 0; i < 10; i++ {
		_, err := client.Login(ctx, email, "not-the-password")
		require.Error(t, err)

		var apiErr *shopsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		if apiErr.StatusCode == http.StatusTooManyRequests {
			throttled = true
			break
		}
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	}

	require.True(t, throttled, "expected a 429 before exhausting the attempts")
}
