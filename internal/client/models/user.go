// Package models defines client-side data models used by the storefront CLI.
package models

// User is the profile of a registered customer. It is the value persisted
// in the session record and carries no password material.
type User struct {
	// ID is a globally unique identifier assigned at registration.
	ID string `json:"id"`

	// Name is the display name chosen by the user.
	Name string `json:"name"`

	// Email is the login identifier, unique within the credential list.
	Email string `json:"email"`
}

// Credential is one entry of the registered-users list. Salt and Verifier
// replace plaintext password storage; the externally observable
// match/no-match contract is unchanged.
type Credential struct {
	User

	// Salt is the per-user random salt fed to the key derivation.
	Salt []byte `json:"salt"`

	// Verifier is the hash of the derived key, compared at login.
	Verifier []byte `json:"verifier"`
}
