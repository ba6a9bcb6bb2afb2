package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionCache(t *testing.T) {
	t.Parallel()

	user := json.RawMessage(`{"id":"u1","name":"Sam"}`)

	t.Run("get after set", func(t *testing.T) {
		t.Parallel()

		c := New(time.Minute)
		t.Cleanup(c.Stop)

		_, ok := c.Get("token-a")
		require.False(t, ok)

		c.Set("token-a", user)
		got, ok := c.Get("token-a")
		require.True(t, ok)
		require.JSONEq(t, string(user), string(got))

		// Different token, different fingerprint.
		_, ok = c.Get("token-b")
		require.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		c := New(time.Minute)
		t.Cleanup(c.Stop)

		c.Set("token-a", user)
		c.Delete("token-a")

		_, ok := c.Get("token-a")
		require.False(t, ok)
	})

	t.Run("entries expire", func(t *testing.T) {
		t.Parallel()

		c := New(20 * time.Millisecond)
		t.Cleanup(c.Stop)

		c.Set("token-a", user)
		_, ok := c.Get("token-a")
		require.True(t, ok)

		time.Sleep(50 * time.Millisecond)
		_, ok = c.Get("token-a")
		require.False(t, ok)
	})

	t.Run("cleanup loop drops expired entries", func(t *testing.T) {
		t.Parallel()

		c := New(10 * time.Millisecond)
		t.Cleanup(c.Stop)

		c.Set("token-a", user)
		c.Set("token-b", user)
		require.Equal(t, 2, c.Len())

		require.Eventually(t, func() bool {
			return c.Len() == 0
		}, time.Second, 10*time.Millisecond)
	})
}
