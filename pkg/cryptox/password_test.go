package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.NotContains(t, hash, "hunter22")

	// Fresh salt per call.
	hash2, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, hash, hash2)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("hunter22", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("hunter23", hash), ErrPasswordMismatch)
	})

	t.Run("empty password", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("", hash), ErrPasswordMismatch)
	})

	t.Run("malformed hash", func(t *testing.T) {
		require.ErrorIs(t, VerifyPassword("hunter22", "not-a-phc-string"), ErrMalformedHash)
		require.ErrorIs(t, VerifyPassword("hunter22", "$bcrypt$whatever"), ErrMalformedHash)
	})
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	a, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	b, err := GenerateToken(TokenSize256)
	require.NoError(t, err)

	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	fp := FingerprintToken("some-opaque-token")
	require.NotEmpty(t, fp)
	require.NotEqual(t, "some-opaque-token", fp)

	// Deterministic; lookups depend on it.
	require.Equal(t, fp, FingerprintToken("some-opaque-token"))
	require.NotEqual(t, fp, FingerprintToken("some-other-token"))
}
