// Package cryptox implements credential hashing for the storefront client.
// Passwords are never stored: registration keeps a random salt and an
// argon2id-derived verifier, and login re-derives and compares.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches a password with argon2id using the given salt.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key into the value persisted alongside
// the salt. Storing a hash of the key rather than the key itself keeps
// the derived key out of the credential list.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// VerifyPassword reports whether password matches the stored
// salt/verifier pair. Comparison is constant-time.
func VerifyPassword(password, salt, verifier []byte) bool {
	candidate := MakeVerifier(DeriveKey(password, salt))
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
