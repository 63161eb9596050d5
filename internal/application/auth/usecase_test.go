package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-admin/internal/application/auth"
	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Catalogo-admin/pkg/jwt"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

type fakeBackend struct {
	refreshErr error
	refreshes  int
	ttl        time.Duration
}

func (b *fakeBackend) token(t *testing.T, user string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testSecret, user, "test", b.ttl)
	require.NoError(t, err)
	return tok
}

func (b *fakeBackend) SignIn(_ context.Context, username, password string) (entity.Session, error) {
	if password != "correcta" {
		return entity.Session{}, errors.New("NotAuthorizedException")
	}
	tok, _ := pkgjwt.Generate(testSecret, username, "test", b.ttl)
	return entity.Session{Username: username, AccessToken: tok, RefreshToken: "rt-" + username}, nil
}

func (b *fakeBackend) Refresh(_ context.Context, refreshToken string) (entity.Session, error) {
	b.refreshes++
	if b.refreshErr != nil {
		return entity.Session{}, b.refreshErr
	}
	tok, _ := pkgjwt.Generate(testSecret, "ana", "test", time.Hour)
	return entity.Session{AccessToken: tok}, nil
}

func newProvider(b *fakeBackend, store *memory.SessionStore) *auth.CredentialProvider {
	return auth.NewCredentialProvider(b, store, 30*time.Second, logger.Nop())
}

func TestLogin_PersisteLaSesion(t *testing.T) {
	store := memory.NewSessionStore()
	p := newProvider(&fakeBackend{ttl: time.Hour}, store)

	tok, err := p.Login(context.Background(), "ana", "correcta")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.True(t, p.IsAuthenticated())

	saved, _ := store.Load(context.Background())
	require.NotNil(t, saved, "la sesión debe sobrevivir a un reinicio")
	assert.Equal(t, tok, saved.AccessToken)
	assert.Equal(t, "rt-ana", saved.RefreshToken)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	p := newProvider(&fakeBackend{ttl: time.Hour}, memory.NewSessionStore())
	_, err := p.Login(context.Background(), "ana", "mala")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.False(t, p.IsAuthenticated())
}

func TestValidToken_VigenteNoRenueva(t *testing.T) {
	b := &fakeBackend{ttl: time.Hour}
	p := newProvider(b, memory.NewSessionStore())
	first, err := p.Login(context.Background(), "ana", "correcta")
	require.NoError(t, err)

	tok, err := p.ValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, tok)
	assert.Zero(t, b.refreshes)
}

func TestValidToken_VencidoRenuevaYPersiste(t *testing.T) {
	b := &fakeBackend{ttl: -time.Minute}
	store := memory.NewSessionStore()
	p := newProvider(b, store)
	expired, err := p.Login(context.Background(), "ana", "correcta")
	require.NoError(t, err)

	tok, err := p.ValidToken(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, expired, tok)
	assert.Equal(t, 1, b.refreshes)

	saved, _ := store.Load(context.Background())
	require.NotNil(t, saved)
	assert.Equal(t, tok, saved.AccessToken)
	assert.Equal(t, "rt-ana", saved.RefreshToken, "se conserva el refresh token si el proveedor no emite otro")
}

func TestValidToken_FallaDeRenovacionLimpiaTodo(t *testing.T) {
	b := &fakeBackend{ttl: -time.Minute, refreshErr: errors.New("refresh token revocado")}
	store := memory.NewSessionStore()
	p := newProvider(b, store)
	_, err := p.Login(context.Background(), "ana", "correcta")
	require.NoError(t, err)

	_, err = p.ValidToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.False(t, p.IsAuthenticated())

	saved, _ := store.Load(context.Background())
	assert.Nil(t, saved, "la persistencia debe quedar limpia")
}

func TestValidToken_SinRefreshToken(t *testing.T) {
	store := memory.NewSessionStore()
	expired, err := pkgjwt.Generate(testSecret, "ana", "test", -time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), entity.Session{Username: "ana", AccessToken: expired}))

	p := newProvider(&fakeBackend{}, store)
	require.NoError(t, p.Restore(context.Background()), "restaurar sin sesión válida no es error")
	assert.False(t, p.IsAuthenticated())

	_, err = p.ValidToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRestore_RecuperaSesionVigente(t *testing.T) {
	store := memory.NewSessionStore()
	b := &fakeBackend{ttl: time.Hour}
	tok := b.token(t, "ana")
	require.NoError(t, store.Save(context.Background(), entity.Session{Username: "ana", AccessToken: tok, RefreshToken: "rt"}))

	p := newProvider(b, store)
	require.NoError(t, p.Restore(context.Background()))
	assert.True(t, p.IsAuthenticated())
	assert.Equal(t, "ana", p.Username())
}

func TestForceRefresh_RenuevaAunqueEsteVigente(t *testing.T) {
	b := &fakeBackend{ttl: time.Hour}
	p := newProvider(b, memory.NewSessionStore())
	_, err := p.Login(context.Background(), "ana", "correcta")
	require.NoError(t, err)

	_, err = p.ForceRefresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, b.refreshes)
}

func TestLogout_Idempotente(t *testing.T) {
	store := memory.NewSessionStore()
	p := newProvider(&fakeBackend{ttl: time.Hour}, store)

	require.NoError(t, p.Logout(context.Background()), "logout sin sesión no falla")
	_, err := p.Login(context.Background(), "ana", "correcta")
	require.NoError(t, err)
	require.NoError(t, p.Logout(context.Background()))
	require.NoError(t, p.Logout(context.Background()))

	assert.False(t, p.IsAuthenticated())
	saved, _ := store.Load(context.Background())
	assert.Nil(t, saved)
}

func TestValidToken_UsaExpiryDelProveedor(t *testing.T) {
	store := memory.NewSessionStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(context.Background(), entity.Session{
		Username: "ana", AccessToken: "opaco", RefreshToken: "rt", Expiry: now.Add(10 * time.Minute),
	}))
	b := &fakeBackend{}
	p := newProvider(b, store).WithClock(func() time.Time { return now })
	require.NoError(t, p.Restore(context.Background()))

	tok, err := p.ValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "opaco", tok, "un token opaco con Expiry futura no requiere leer el JWT")
	assert.Zero(t, b.refreshes)
}
