package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_CreatesSchema(t *testing.T) {
	conn, err := Init(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(`INSERT INTO kv (key, value) VALUES ('user', x'7b7d')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInit_IsIdempotent(t *testing.T) {
	dsn := t.TempDir() + "/store.db"

	conn, err := Init(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	conn, err = Init(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}
