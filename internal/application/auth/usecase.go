package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/pkg/jwt"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

// IdentityBackend proveedor de identidad alojado (externo).
type IdentityBackend interface {
	SignIn(ctx context.Context, username, password string) (entity.Session, error)
	Refresh(ctx context.Context, refreshToken string) (entity.Session, error)
}

// SessionStore almacenamiento local durable de la sesión (sobrevive reinicios).
// Load devuelve nil, nil si no hay sesión guardada.
type SessionStore interface {
	Load(ctx context.Context) (*entity.Session, error)
	Save(ctx context.Context, s entity.Session) error
	Clear(ctx context.Context) error
}

// CredentialProvider obtiene, cachea y renueva el token de acceso.
// Es un servicio con dueño explícito: se inicializa con Restore y se cierra con Logout.
type CredentialProvider struct {
	backend IdentityBackend
	store   SessionStore
	leeway  time.Duration
	now     func() time.Time
	log     *logger.Logger

	mu      sync.Mutex // serializa la renovación entre llamadas concurrentes del gateway
	session *entity.Session
}

// NewCredentialProvider construye el proveedor. leeway es el margen de renovación anticipada.
func NewCredentialProvider(backend IdentityBackend, store SessionStore, leeway time.Duration, log *logger.Logger) *CredentialProvider {
	return &CredentialProvider{
		backend: backend,
		store:   store,
		leeway:  leeway,
		now:     time.Now,
		log:     log.Component("auth"),
	}
}

// WithClock reemplaza el reloj (tests).
func (p *CredentialProvider) WithClock(now func() time.Time) *CredentialProvider {
	p.now = now
	return p
}

// Restore intenta recuperar la sesión persistida al arrancar. Sin sesión válida no es error:
// el panel simplemente queda sin autenticar.
func (p *CredentialProvider) Restore(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	saved, err := p.store.Load(ctx)
	if errors.Is(err, domain.ErrUnauthenticated) {
		p.log.Warn().Err(err).Msg("sesión persistida descartada")
		return p.clearLocked(ctx)
	}
	if err != nil {
		return fmt.Errorf("restaurar sesión: %w", err)
	}
	if saved == nil {
		return nil
	}
	p.session = saved
	if _, err := p.validLocked(ctx); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil
		}
		return err
	}
	p.log.Info().Str("user", saved.Username).Msg("sesión restaurada")
	return nil
}

// Login autentica con el proveedor y persiste la sesión.
func (p *CredentialProvider) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: usuario y contraseña requeridos", domain.ErrInvalidInput)
	}
	s, err := p.backend.SignIn(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if s.Username == "" {
		s.Username = username
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.persistLocked(ctx, s); err != nil {
		return "", err
	}
	p.log.Info().Str("user", s.Username).Msg("login correcto")
	return s.AccessToken, nil
}

// Logout es idempotente: limpia la sesión en memoria y la persistida sin importar el estado previo.
func (p *CredentialProvider) Logout(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clearLocked(ctx)
}

// IsAuthenticated indica si hay una sesión cacheada (sin consultar al proveedor).
func (p *CredentialProvider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session != nil && p.session.AccessToken != ""
}

// Username usuario de la sesión actual, vacío si no hay.
func (p *CredentialProvider) Username() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return ""
	}
	return p.session.Username
}

// ValidToken devuelve un token vigente, renovándolo en silencio si está por expirar.
func (p *CredentialProvider) ValidToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.validLocked(ctx)
}

// ForceRefresh renueva aunque el token parezca vigente (el gateway lo rechazó).
func (p *CredentialProvider) ForceRefresh(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return "", domain.ErrUnauthenticated
	}
	return p.refreshLocked(ctx)
}

func (p *CredentialProvider) validLocked(ctx context.Context) (string, error) {
	if p.session == nil || p.session.AccessToken == "" {
		return "", domain.ErrUnauthenticated
	}
	if p.fresh(*p.session) {
		return p.session.AccessToken, nil
	}
	return p.refreshLocked(ctx)
}

// fresh usa la expiración informada por el proveedor o, si falta, el claim exp del JWT.
func (p *CredentialProvider) fresh(s entity.Session) bool {
	exp := s.Expiry
	if exp.IsZero() {
		var err error
		exp, err = jwt.ExpiresAt(s.AccessToken)
		if err != nil {
			return false
		}
	}
	return p.now().Add(p.leeway).Before(exp)
}

func (p *CredentialProvider) refreshLocked(ctx context.Context) (string, error) {
	if !p.session.HasRefresh() {
		_ = p.clearLocked(ctx)
		return "", domain.ErrUnauthenticated
	}
	renewed, err := p.backend.Refresh(ctx, p.session.RefreshToken)
	if err != nil {
		p.log.Warn().Err(err).Msg("renovación de token fallida; se cierra la sesión")
		_ = p.clearLocked(ctx)
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if renewed.RefreshToken == "" {
		renewed.RefreshToken = p.session.RefreshToken
	}
	if renewed.Username == "" {
		renewed.Username = p.session.Username
	}
	if err := p.persistLocked(ctx, renewed); err != nil {
		return "", err
	}
	p.log.Debug().Str("user", renewed.Username).Msg("token renovado")
	return renewed.AccessToken, nil
}

// persistLocked guarda antes de publicar en memoria: un token que no se pudo persistir no se usa.
func (p *CredentialProvider) persistLocked(ctx context.Context, s entity.Session) error {
	if err := p.store.Save(ctx, s); err != nil {
		return fmt.Errorf("persistir sesión: %w", err)
	}
	p.session = &s
	return nil
}

func (p *CredentialProvider) clearLocked(ctx context.Context) error {
	p.session = nil
	if err := p.store.Clear(ctx); err != nil {
		return fmt.Errorf("limpiar sesión: %w", err)
	}
	return nil
}
