package search

import (
	"context"
	"sync"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// Fetcher trae una página de la consulta a partir de un continuation token.
type Fetcher[T any] func(ctx context.Context, q Query, nextToken string) (entity.Page[T], error)

// View transforma los ítems acumulados al leerlos (p. ej. superponer la copia de trabajo).
type View[T any] func(items []T) []T

// Listing estado de una lista paginada: consulta activa, ítems acumulados y continuation
// token. Solo admite una carga a la vez.
type Listing[T any] struct {
	fetch Fetcher[T]
	view  View[T]

	mu      sync.Mutex
	query   Query
	items   []T
	next    string
	loaded  bool
	loading bool
}

// State foto de la lista para la capa de presentación.
type State[T any] struct {
	Query   Query `json:"query"`
	Items   []T   `json:"items"`
	HasMore bool  `json:"hasMore"`
	Loading bool  `json:"loading"`
}

// NewListing crea una lista vacía; view puede ser nil.
func NewListing[T any](fetch Fetcher[T], view View[T]) *Listing[T] {
	return &Listing[T]{fetch: fetch, view: view, query: ParseQuery("")}
}

// Apply reemplaza la consulta activa y carga su primera página.
func (l *Listing[T]) Apply(ctx context.Context, raw string) error {
	return l.load(ctx, ParseQuery(raw), true)
}

// Clear vuelve al listado sin filtro desde la primera página (nunca desde un token viejo).
func (l *Listing[T]) Clear(ctx context.Context) error {
	return l.Apply(ctx, "")
}

// LoadMore continúa la consulta activa, filtrada o no. Con la lista agotada no hace nada.
func (l *Listing[T]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	q := l.query
	fresh := !l.loaded
	exhausted := l.loaded && l.next == ""
	l.mu.Unlock()

	if exhausted {
		return nil
	}
	return l.load(ctx, q, fresh)
}

// State devuelve la foto actual.
func (l *Listing[T]) State() State[T] {
	l.mu.Lock()
	items := make([]T, len(l.items))
	copy(items, l.items)
	st := State[T]{Query: l.query, HasMore: l.next != "", Loading: l.loading}
	l.mu.Unlock()

	if l.view != nil {
		items = l.view(items)
	}
	st.Items = items
	return st
}

func (l *Listing[T]) load(ctx context.Context, q Query, fresh bool) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return domain.ErrListingBusy
	}
	l.loading = true
	token := l.next
	if fresh {
		token = ""
	}
	l.mu.Unlock()

	page, err := l.fetch(ctx, q, token)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		return err
	}
	if fresh {
		l.query = q
		l.items = nil
	}
	l.items = append(l.items, page.Items...)
	l.next = page.NextToken
	l.loaded = true
	return nil
}
