package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_DeterministicPerSalt(t *testing.T) {
	pw := []byte("pw")
	salt := []byte("0123456789abcdef0123456789abcdef")

	k1 := DeriveKey(pw, salt)
	k2 := DeriveKey(pw, salt)
	require.Len(t, k1, 32)
	assert.Equal(t, k1, k2)

	other := DeriveKey(pw, []byte("fedcba9876543210fedcba9876543210"))
	assert.NotEqual(t, k1, other)
}

func TestVerifyPassword(t *testing.T) {
	pw := []byte("secret")
	salt := []byte("0123456789abcdef0123456789abcdef")
	verifier := MakeVerifier(DeriveKey(pw, salt))

	assert.True(t, VerifyPassword([]byte("secret"), salt, verifier))
	assert.False(t, VerifyPassword([]byte("Secret"), salt, verifier))
	assert.False(t, VerifyPassword([]byte(""), salt, verifier))
}
