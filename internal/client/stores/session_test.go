package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlapshin/storefront/internal/client/models"
	"github.com/mlapshin/storefront/internal/client/repositories/kv"
	"github.com/mlapshin/storefront/internal/common"
	"github.com/mlapshin/storefront/internal/cryptox"
	"github.com/mlapshin/storefront/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupRepo(t *testing.T) kv.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return kv.NewSQLiteRepository(db)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// seedCredential writes a credential list containing a single user with
// the given plaintext password, hashed the same way Register does.
func seedCredential(t *testing.T, repo kv.Repository, id, name, email, password string) {
	t.Helper()
	salt := common.GenerateRandByteArray(32)
	creds := []models.Credential{{
		User:     models.User{ID: id, Name: name, Email: email},
		Salt:     salt,
		Verifier: cryptox.MakeVerifier(cryptox.DeriveKey([]byte(password), salt)),
	}}
	data, err := json.Marshal(creds)
	require.NoError(t, err)
	require.NoError(t, repo.Set(context.Background(), "users", data))
}

func credentialCount(t *testing.T, repo kv.Repository) int {
	t.Helper()
	data, err := repo.Get(context.Background(), "users")
	require.NoError(t, err)
	if data == nil {
		return 0
	}
	var creds []models.Credential
	require.NoError(t, json.Unmarshal(data, &creds))
	return len(creds)
}

// ---- TESTS ----

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	seedCredential(t, repo, "1", "Alice", "a@x.com", "pw")

	s := NewSessionStore(ctx, repo, testLogger(), 0)

	user, err := s.Login(ctx, "a@x.com", []byte("pw"))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "1", user.ID)

	state := s.State()
	assert.True(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)
	require.NotNil(t, state.User)
	assert.Equal(t, "1", state.User.ID)

	// session record persisted
	data, err := repo.Get(ctx, "user")
	require.NoError(t, err)
	require.NotNil(t, data)
	var persisted models.User
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "1", persisted.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	seedCredential(t, repo, "1", "Alice", "a@x.com", "pw")

	s := NewSessionStore(ctx, repo, testLogger(), 0)

	user, err := s.Login(ctx, "a@x.com", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Nil(t, user)

	state := s.State()
	assert.Nil(t, state.User)
	assert.False(t, state.IsAuthenticated)
	assert.False(t, state.IsLoading)

	// no session record written
	data, err := repo.Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	s := NewSessionStore(ctx, repo, testLogger(), 0)

	_, err := s.Login(ctx, "nobody@x.com", []byte("pw"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_ContextCancelledDuringLatency(t *testing.T) {
	repo := setupRepo(t)
	seedCredential(t, repo, "1", "Alice", "a@x.com", "pw")

	s := NewSessionStore(context.Background(), repo, testLogger(), 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Login(ctx, "a@x.com", []byte("pw"))
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.State().IsLoading)
	assert.False(t, s.State().IsAuthenticated)
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	s := NewSessionStore(ctx, repo, testLogger(), 0)

	user, err := s.Register(ctx, "Bob", "b@x.com", []byte("secret"))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, "b@x.com", user.Email)

	assert.True(t, s.State().IsAuthenticated)
	assert.Equal(t, 1, credentialCount(t, repo))
}

func TestRegister_EmailAlreadyRegistered(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	seedCredential(t, repo, "1", "Alice", "a@x.com", "pw")

	s := NewSessionStore(ctx, repo, testLogger(), 0)

	user, err := s.Register(ctx, "Imposter", "a@x.com", []byte("other"))
	require.ErrorIs(t, err, common.ErrEmailAlreadyRegistered)
	assert.Nil(t, user)
	assert.False(t, s.State().IsAuthenticated)
	assert.Equal(t, 1, credentialCount(t, repo))
}

func TestRegister_ThenLoginWithSamePassword(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	s := NewSessionStore(ctx, repo, testLogger(), 0)
	registered, err := s.Register(ctx, "Bob", "b@x.com", []byte("secret"))
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	user, err := s.Login(ctx, "b@x.com", []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = s.Login(ctx, "b@x.com", []byte("SECRET"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogout_ClearsSessionAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	seedCredential(t, repo, "1", "Alice", "a@x.com", "pw")

	s := NewSessionStore(ctx, repo, testLogger(), 0)
	_, err := s.Login(ctx, "a@x.com", []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	state := s.State()
	assert.Nil(t, state.User)
	assert.False(t, state.IsAuthenticated)

	data, err := repo.Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, data)

	// already anonymous, still fine
	require.NoError(t, s.Logout(ctx))
}

func TestUpdateUser_PersistsProfileAndCredentialEntry(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	seedCredential(t, repo, "1", "Alice", "a@x.com", "pw")

	s := NewSessionStore(ctx, repo, testLogger(), 0)
	user, err := s.Login(ctx, "a@x.com", []byte("pw"))
	require.NoError(t, err)

	updated := *user
	updated.Name = "Alice Cooper"
	require.NoError(t, s.UpdateUser(ctx, updated))

	state := s.State()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "Alice Cooper", state.User.Name)

	// credential entry replaced by id, password still valid
	require.NoError(t, s.Logout(ctx))
	again, err := s.Login(ctx, "a@x.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", again.Name)
}

func TestUpdateUser_AnonymousIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	s := NewSessionStore(ctx, repo, testLogger(), 0)
	err := s.UpdateUser(ctx, models.User{ID: "1", Name: "Ghost"})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestHydrate_RestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	data, err := json.Marshal(models.User{ID: "7", Name: "Carol", Email: "c@x.com"})
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, "user", data))

	s := NewSessionStore(ctx, repo, testLogger(), 0)
	state := s.State()
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "7", state.User.ID)
}

func TestHydrate_MalformedSessionFallsBackToAnonymous(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	require.NoError(t, repo.Set(ctx, "user", []byte(`{not json`)))

	s := NewSessionStore(ctx, repo, testLogger(), 0)
	state := s.State()
	assert.Nil(t, state.User)
	assert.False(t, state.IsAuthenticated)
}

func TestSubscribe_NotifiedOnIdentityChangeOnly(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	seedCredential(t, repo, "1", "Alice", "a@x.com", "pw")

	s := NewSessionStore(ctx, repo, testLogger(), 0)

	var events []*models.User
	s.Subscribe(func(ctx context.Context, u *models.User) {
		events = append(events, u)
	})

	user, err := s.Login(ctx, "a@x.com", []byte("pw"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, user.ID, events[0].ID)

	// same identity, no event
	updated := *user
	updated.Name = "Alice B."
	require.NoError(t, s.UpdateUser(ctx, updated))
	require.Len(t, events, 1)

	require.NoError(t, s.Logout(ctx))
	require.Len(t, events, 2)
	assert.Nil(t, events[1])

	// already anonymous, logout again fires nothing
	require.NoError(t, s.Logout(ctx))
	require.Len(t, events, 2)
}
