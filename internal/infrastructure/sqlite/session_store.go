package sqlite

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

const (
	nonceSize = 24
	keyInfo   = "catalog-admin/session/v1"
)

// Open abre (o crea) la base local y asegura el esquema. Una sola conexión: la base
// la usa un único proceso y así las escrituras quedan serializadas.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS session(
  id         INTEGER PRIMARY KEY CHECK (id = 1),
  username   TEXT NOT NULL,
  payload    BLOB NOT NULL,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("crear esquema de sesión: %w", err)
	}
	return nil
}

// SessionStore persiste la sesión del panel en una fila única. Los tokens se guardan cifrados
// con secretbox; la clave se deriva del secreto configurado con HKDF-SHA256.
type SessionStore struct {
	db  *sqlx.DB
	key [32]byte
	now func() time.Time
}

// NewSessionStore crea el almacén. secret no puede estar vacío.
func NewSessionStore(db *sqlx.DB, secret string) (*SessionStore, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: SESSION_SECRET es obligatorio", domain.ErrInvalidInput)
	}
	s := &SessionStore{db: db, now: time.Now}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, fmt.Errorf("derivar clave de sesión: %w", err)
	}
	return s, nil
}

type sessionRow struct {
	Username string `db:"username"`
	Payload  []byte `db:"payload"`
}

// sessionPayload parte cifrada de la fila.
type sessionPayload struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// Load devuelve nil, nil si no hay sesión. Una fila que no se puede descifrar (otro secreto)
// se informa como ErrUnauthenticated: equivale a no tener sesión.
func (s *SessionStore) Load(ctx context.Context) (*entity.Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row, `SELECT username, payload FROM session WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}

	plain, err := s.open(row.Payload)
	if err != nil {
		return nil, err
	}
	var p sessionPayload
	if err := json.Unmarshal(plain, &p); err != nil {
		return nil, fmt.Errorf("%w: sesión persistida corrupta", domain.ErrUnauthenticated)
	}
	return &entity.Session{
		Username:     row.Username,
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		Expiry:       p.Expiry,
	}, nil
}

// Save reemplaza la sesión guardada en una sola sentencia.
func (s *SessionStore) Save(ctx context.Context, sess entity.Session) error {
	plain, err := json.Marshal(sessionPayload{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		Expiry:       sess.Expiry,
	})
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	sealed, err := s.seal(plain)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO session(id, username, payload, updated_at) VALUES(1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET username = excluded.username, payload = excluded.payload, updated_at = excluded.updated_at`,
		sess.Username, sealed, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Clear borra la sesión; sin sesión no es error.
func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("limpiar sesión: %w", err)
	}
	return nil
}

func (s *SessionStore) seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generar nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s *SessionStore) open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: sesión persistida corrupta", domain.ErrUnauthenticated)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, fmt.Errorf("%w: la sesión persistida no se puede descifrar", domain.ErrUnauthenticated)
	}
	return plain, nil
}
