package shopsdk

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	require.Equal(t, 5*time.Minute, p.StaleAfter)
	require.Equal(t, 15*time.Minute, p.RefetchInterval)
	require.Equal(t, 2, p.MaxRetries)
}

func TestPolicyShouldRetry(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	serverErr := &APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	authErr := &APIError{StatusCode: http.StatusUnauthorized, Message: "not authenticated"}

	t.Run("nil error never retries", func(t *testing.T) {
		require.False(t, p.ShouldRetry(nil, 0))
	})

	t.Run("auth failure never retries", func(t *testing.T) {
		require.False(t, p.ShouldRetry(authErr, 0))
		require.False(t, p.ShouldRetry(authErr, 1))
	})

	t.Run("wrapped auth failure never retries", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), authErr)
		require.False(t, p.ShouldRetry(wrapped, 0))
	})

	t.Run("other failures retry up to the cap", func(t *testing.T) {
		require.True(t, p.ShouldRetry(serverErr, 0))
		require.True(t, p.ShouldRetry(serverErr, 1))
		require.False(t, p.ShouldRetry(serverErr, 2))
		require.False(t, p.ShouldRetry(serverErr, 10))
	})

	t.Run("non-api errors retry too", func(t *testing.T) {
		require.True(t, p.ShouldRetry(errors.New("malformed body"), 0))
	})
}

func TestPolicyStale(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	now := time.Now()

	require.True(t, p.Stale(time.Time{}, now), "never fetched is always stale")
	require.False(t, p.Stale(now.Add(-time.Minute), now))
	require.False(t, p.Stale(now.Add(-5*time.Minute), now), "exactly at the window is still fresh")
	require.True(t, p.Stale(now.Add(-5*time.Minute-time.Second), now))
}

func TestPolicyBackoff(t *testing.T) {
	t.Parallel()

	p := Policy{RetryBackoff: time.Second}
	require.Equal(t, time.Second, p.Backoff(0))
	require.Equal(t, 2*time.Second, p.Backoff(1))
	require.Equal(t, 4*time.Second, p.Backoff(2))
	require.Equal(t, 30*time.Second, p.Backoff(10), "capped at 30s")

	zero := Policy{}
	require.Equal(t, time.Duration(0), zero.Backoff(3))
}
