package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasherWeakRoundTrip(t *testing.T) {
	h := NewHasher(0)

	hashed, err := h.Hash("secret")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hashed, "{SHA}"))
	require.NotEqual(t, "secret", hashed)

	require.True(t, h.Verify("secret", hashed))
	require.False(t, h.Verify("wrong", hashed))
}

func TestHasherBcryptRoundTrip(t *testing.T) {
	h := NewHasher(4) // minimum cost keeps the test fast

	hashed, err := h.Hash("secret")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hashed, "$2"))

	require.True(t, h.Verify("secret", hashed))
	require.False(t, h.Verify("wrong", hashed))
}

func TestHasherVerifyAcrossAlgorithmSwitch(t *testing.T) {
	weak := NewHasher(0)
	strong := NewHasher(4)

	weakHash, err := weak.Hash("secret")
	require.NoError(t, err)
	strongHash, err := strong.Hash("secret")
	require.NoError(t, err)

	// The stored hash describes its own algorithm, so either hasher
	// verifies both without re-hashing.
	require.True(t, strong.Verify("secret", weakHash))
	require.True(t, weak.Verify("secret", strongHash))
}

func TestHasherMalformedHash(t *testing.T) {
	h := NewHasher(4)

	require.False(t, h.Verify("secret", ""))
	require.False(t, h.Verify("secret", "not a hash"))
	require.False(t, h.Verify("secret", "{SHA}garbage"))
	require.False(t, h.Verify("secret", "$2a$malformed"))
}
