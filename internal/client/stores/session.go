// Package stores contains the stateful cores of the storefront client:
// the session store (authentication state and the credential list) and
// the wishlist store (per-user saved products).
//
// Stores are not safe for concurrent use. All commands are issued from
// the single CLI dispatch loop, so no locking is needed; the only
// suspension points are the simulated network waits in Login and
// Register, which honor context cancellation.
package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mlapshin/storefront/internal/client/models"
	"github.com/mlapshin/storefront/internal/client/repositories/kv"
	"github.com/mlapshin/storefront/internal/common"
	"github.com/mlapshin/storefront/internal/cryptox"
	"github.com/mlapshin/storefront/internal/logging"
)

const (
	sessionKey = "user"
	usersKey   = "users"
)

// SessionState is the externally visible authentication state.
// IsAuthenticated is true exactly when User is non-nil; IsLoading is true
// only while a login or register call is in flight.
type SessionState struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
}

// UserListener is notified synchronously whenever the identity of the
// current user changes (login, register, logout). It is not invoked when
// the same user's profile is updated in place.
type UserListener func(ctx context.Context, user *models.User)

// SessionStore owns the session record and the credential list, both
// persisted through an injected key-value repository.
type SessionStore struct {
	repo    kv.Repository
	log     logging.Logger
	latency time.Duration

	state     SessionState
	listeners []UserListener
}

// NewSessionStore constructs a session store and hydrates its state from
// the persisted session record. A missing or malformed record yields the
// anonymous state. latency is the simulated network round-trip awaited by
// Login and Register.
func NewSessionStore(ctx context.Context, repo kv.Repository, log logging.Logger, latency time.Duration) *SessionStore {
	s := &SessionStore{repo: repo, log: log.With("store", "session"), latency: latency}
	s.hydrate(ctx)
	return s
}

func (s *SessionStore) hydrate(ctx context.Context) {
	data, err := s.repo.Get(ctx, sessionKey)
	if err != nil {
		s.log.Error(ctx, "failed to read persisted session", "error", err)
		return
	}
	if data == nil {
		return
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Warn(ctx, "malformed persisted session, starting anonymous", "error", err)
		return
	}

	s.state = SessionState{User: &user, IsAuthenticated: true}
	s.log.Debug(ctx, "session hydrated", "user_id", user.ID)
}

// State returns the current session state.
func (s *SessionStore) State() SessionState {
	return s.state
}

// Subscribe registers a listener for user-identity changes. Listeners are
// invoked synchronously, in registration order, within the calling flow.
func (s *SessionStore) Subscribe(fn UserListener) {
	s.listeners = append(s.listeners, fn)
}

func (s *SessionStore) setUser(ctx context.Context, user *models.User) {
	prev := s.state.User
	s.state = SessionState{User: user, IsAuthenticated: user != nil}

	if sameIdentity(prev, user) {
		return
	}
	for _, fn := range s.listeners {
		fn(ctx, user)
	}
}

func sameIdentity(a, b *models.User) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}

// Login authenticates against the credential list. On success the session
// record is persisted and the authenticated user returned; on no match
// the state returns to anonymous and common.ErrInvalidCredentials is
// raised. The email comparison is case-sensitive.
func (s *SessionStore) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	s.state.IsLoading = true
	defer func() { s.state.IsLoading = false }()

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	creds := s.loadCredentials(ctx)
	for i := range creds {
		c := &creds[i]
		if c.Email != email || !cryptox.VerifyPassword(password, c.Salt, c.Verifier) {
			continue
		}

		user := c.User
		if err := s.persistSession(ctx, &user); err != nil {
			s.setUser(ctx, nil)
			return nil, err
		}
		s.setUser(ctx, &user)
		s.log.Info(ctx, "login successful", "user_id", user.ID)
		return &user, nil
	}

	s.setUser(ctx, nil)
	return nil, common.ErrInvalidCredentials
}

// Register creates a new account. The email must not already be present
// in the credential list; otherwise common.ErrEmailAlreadyRegistered is
// raised and nothing is mutated. On success the new user is appended to
// the credential list, both the list and the session record are
// persisted, and the session becomes authenticated.
func (s *SessionStore) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	s.state.IsLoading = true
	defer func() { s.state.IsLoading = false }()

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	creds := s.loadCredentials(ctx)
	for i := range creds {
		if creds[i].Email == email {
			s.setUser(ctx, nil)
			return nil, common.ErrEmailAlreadyRegistered
		}
	}

	salt := common.GenerateRandByteArray(32)
	cred := models.Credential{
		User:     models.User{ID: uuid.NewString(), Name: name, Email: email},
		Salt:     salt,
		Verifier: cryptox.MakeVerifier(cryptox.DeriveKey(password, salt)),
	}
	creds = append(creds, cred)

	// Two separate writes; a failure between them leaves the credential
	// list and the session record inconsistent.
	if err := s.persistCredentials(ctx, creds); err != nil {
		s.setUser(ctx, nil)
		return nil, err
	}
	user := cred.User
	if err := s.persistSession(ctx, &user); err != nil {
		s.setUser(ctx, nil)
		return nil, err
	}

	s.setUser(ctx, &user)
	s.log.Info(ctx, "registration successful", "user_id", user.ID)
	return &user, nil
}

// Logout clears the persisted session record and returns the store to the
// anonymous state. Safe to call when already anonymous.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.repo.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.setUser(ctx, nil)
	return nil
}

// UpdateUser replaces the profile of the authenticated user, persisting
// both the session record and the matching credential-list entry (found
// by id, salt and verifier preserved). Returns common.ErrNotAuthenticated
// when no user is signed in. The two writes are not atomic.
func (s *SessionStore) UpdateUser(ctx context.Context, user models.User) error {
	if !s.state.IsAuthenticated {
		return common.ErrNotAuthenticated
	}

	if err := s.persistSession(ctx, &user); err != nil {
		return err
	}

	creds := s.loadCredentials(ctx)
	for i := range creds {
		if creds[i].ID == user.ID {
			creds[i].User = user
		}
	}
	if err := s.persistCredentials(ctx, creds); err != nil {
		return err
	}

	s.setUser(ctx, &user)
	return nil
}

// loadCredentials reads the registered-users list. A missing or malformed
// list falls back to empty; decode failures are logged, never surfaced.
func (s *SessionStore) loadCredentials(ctx context.Context) []models.Credential {
	data, err := s.repo.Get(ctx, usersKey)
	if err != nil {
		s.log.Error(ctx, "failed to read credential list", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var creds []models.Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		s.log.Error(ctx, "malformed credential list, treating as empty", "error", err)
		return nil
	}
	return creds
}

func (s *SessionStore) persistCredentials(ctx context.Context, creds []models.Credential) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credential list: %w", err)
	}
	if err := s.repo.Set(ctx, usersKey, data); err != nil {
		return fmt.Errorf("failed to persist credential list: %w", err)
	}
	return nil
}

func (s *SessionStore) persistSession(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.repo.Set(ctx, sessionKey, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// simulateLatency waits out the configured fake network round trip,
// returning early if ctx is cancelled.
func (s *SessionStore) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
