package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/infrastructure/sqlite"
)

func openStore(t *testing.T, path, secret string) *sqlite.SessionStore {
	t.Helper()
	db, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store, err := sqlite.NewSessionStore(db, secret)
	require.NoError(t, err)
	return store
}

func TestSessionStore_GuardaYRecupera(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store := openStore(t, path, "secreto")
	ctx := context.Background()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "base vacía: sin sesión")

	exp := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, entity.Session{Username: "ana", AccessToken: "at-1", RefreshToken: "rt-1", Expiry: exp}))
	require.NoError(t, store.Save(ctx, entity.Session{Username: "ana", AccessToken: "at-2", RefreshToken: "rt-1", Expiry: exp}))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ana", got.Username)
	assert.Equal(t, "at-2", got.AccessToken)
	assert.Equal(t, "rt-1", got.RefreshToken)
	assert.True(t, exp.Equal(got.Expiry))
}

func TestSessionStore_SobreviveReapertura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	first, err := sqlite.NewSessionStore(db, "secreto")
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, entity.Session{Username: "ana", AccessToken: "at"}))
	require.NoError(t, db.Close())

	got, err := openStore(t, path, "secreto").Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "at", got.AccessToken)
}

func TestSessionStore_TokensCifrados(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store, err := sqlite.NewSessionStore(db, "secreto")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, entity.Session{Username: "ana", AccessToken: "token-en-claro"}))

	var payload []byte
	require.NoError(t, db.Get(&payload, `SELECT payload FROM session WHERE id = 1`))
	assert.NotContains(t, string(payload), "token-en-claro")

	other, err := sqlite.NewSessionStore(db, "otro-secreto")
	require.NoError(t, err)
	_, err = other.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSessionStore_ClearIdempotente(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "session.db"), "secreto")
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Save(ctx, entity.Session{Username: "ana", AccessToken: "at"}))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewSessionStore_SecretoObligatorio(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = sqlite.NewSessionStore(db, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
