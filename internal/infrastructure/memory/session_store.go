package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// SessionStore almacén de sesión en memoria (tests y ejecución sin disco).
type SessionStore struct {
	mu      sync.Mutex
	session *entity.Session
}

func NewSessionStore() *SessionStore { return &SessionStore{} }

func (s *SessionStore) Load(context.Context) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	cp := *s.session
	return &cp, nil
}

func (s *SessionStore) Save(_ context.Context, sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
	return nil
}

func (s *SessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
