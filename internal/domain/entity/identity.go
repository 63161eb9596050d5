package entity

import "strings"

// pendingPrefix distingue en texto las identidades locales de las persistidas.
const pendingPrefix = "new:"

type identityKind uint8

const (
	identityPersisted identityKind = iota + 1
	identityPending
)

// Identity identifica un registro del conjunto de trabajo: Persisted(clave del servidor)
// o Pending(id local temporal) mientras el registro no se ha guardado.
type Identity struct {
	kind identityKind
	key  string
}

// Persisted identidad de un registro que ya existe en el servidor (sku o nombre de categoría).
func Persisted(key string) Identity { return Identity{kind: identityPersisted, key: key} }

// Pending identidad temporal de una fila nueva.
func Pending(localID string) Identity { return Identity{kind: identityPending, key: localID} }

// ParseIdentity interpreta la forma textual producida por String.
func ParseIdentity(s string) Identity {
	if strings.HasPrefix(s, pendingPrefix) {
		return Pending(strings.TrimPrefix(s, pendingPrefix))
	}
	return Persisted(s)
}

func (i Identity) IsPending() bool   { return i.kind == identityPending }
func (i Identity) IsPersisted() bool { return i.kind == identityPersisted }
func (i Identity) IsZero() bool      { return i.kind == 0 }

// Key devuelve la clave sin prefijo (sku/nombre si persistido, id local si pendiente).
func (i Identity) Key() string { return i.key }

func (i Identity) String() string {
	if i.kind == identityPending {
		return pendingPrefix + i.key
	}
	return i.key
}

// MarshalText para usar la identidad en JSON y rutas.
func (i Identity) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Identity) UnmarshalText(b []byte) error {
	*i = ParseIdentity(string(b))
	return nil
}
