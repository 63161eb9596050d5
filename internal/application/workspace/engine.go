package workspace

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/domain/repository"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

// defaultMaxInFlight llamadas de guardado simultáneas contra el gateway.
const defaultMaxInFlight = 8

// Engine mantiene la copia de trabajo de productos y categorías frente a su baseline
// (último estado conocido del servidor), acumula altas/ediciones/bajas locales y las
// reconcilia con el servidor en Save.
//
// El estado en memoria se modifica en una sola secuencia lógica; mu solo protege contra
// handlers HTTP concurrentes, nunca se mantiene durante una llamada remota.
type Engine struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        *logger.Logger
	newID      func() string

	maxInFlight int

	mu                 sync.Mutex
	baselineProducts   []entity.Product
	workingProducts    []entity.Product
	baselineCategories []entity.Category
	workingCategories  []entity.Category

	saving atomic.Bool
}

// NewEngine construye el motor con los puertos del gateway.
func NewEngine(products repository.ProductRepository, categories repository.CategoryRepository, log *logger.Logger) *Engine {
	return &Engine{
		products:    products,
		categories:  categories,
		log:         log.Component("workspace"),
		newID:       func() string { return uuid.New().String() },
		maxInFlight: defaultMaxInFlight,
	}
}

// RowState estado de presentación de un registro.
type RowState struct {
	New     bool `json:"new"`
	Deleted bool `json:"deleted"`
	Dirty   bool `json:"dirty"`
}

// ProductRow producto de trabajo con su estado.
type ProductRow struct {
	entity.Product
	State RowState
}

// CategoryRow categoría de trabajo con su estado.
type CategoryRow struct {
	entity.Category
	State RowState
}

// Refresh trae todas las páginas de productos y categorías y reemplaza baseline y copia de
// trabajo completas. Las ediciones locales pendientes se pierden.
func (e *Engine) Refresh(ctx context.Context) error {
	products, err := fetchAll(ctx, e.products.List)
	if err != nil {
		return fmt.Errorf("refetch productos: %w", err)
	}
	categories, err := fetchAll(ctx, e.categories.List)
	if err != nil {
		return fmt.Errorf("refetch categorías: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.baselineProducts = cloneProducts(products)
	e.workingProducts = cloneProducts(products)
	e.baselineCategories = cloneCategories(categories)
	e.workingCategories = cloneCategories(categories)

	e.log.Debug().Int("products", len(products)).Int("categories", len(categories)).Msg("baseline actualizado")
	return nil
}

// fetchAll recorre la paginación hasta agotar el continuation token.
func fetchAll[T any](ctx context.Context, list func(context.Context, string) (entity.Page[T], error)) ([]T, error) {
	var (
		all   []T
		token string
	)
	for {
		page, err := list(ctx, token)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if !page.HasMore() {
			return all, nil
		}
		if page.NextToken == token {
			return nil, fmt.Errorf("%w: continuation token repetido %q", domain.ErrTransport, token)
		}
		token = page.NextToken
	}
}

// Products copia de trabajo completa con el estado de cada fila.
func (e *Engine) Products() []ProductRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	rows := make([]ProductRow, 0, len(e.workingProducts))
	for _, p := range e.workingProducts {
		rows = append(rows, ProductRow{Product: p.Clone(), State: e.productStateLocked(p)})
	}
	return rows
}

// Categories copia de trabajo completa con el estado de cada fila.
func (e *Engine) Categories() []CategoryRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	rows := make([]CategoryRow, 0, len(e.workingCategories))
	for _, c := range e.workingCategories {
		rows = append(rows, CategoryRow{Category: c.Clone(), State: e.categoryStateLocked(c)})
	}
	return rows
}

// Product una fila de trabajo.
func (e *Engine) Product(id entity.Identity) (ProductRow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingProductIndex(id)
	if i < 0 {
		return ProductRow{}, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	p := e.workingProducts[i]
	return ProductRow{Product: p.Clone(), State: e.productStateLocked(p)}, nil
}

// Category una fila de trabajo.
func (e *Engine) Category(id entity.Identity) (CategoryRow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingCategoryIndex(id)
	if i < 0 {
		return CategoryRow{}, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	c := e.workingCategories[i]
	return CategoryRow{Category: c.Clone(), State: e.categoryStateLocked(c)}, nil
}

// Saving indica si hay un guardado en curso (la UI deshabilita la acción).
func (e *Engine) Saving() bool { return e.saving.Load() }

// HasChanges indica si algún registro es nuevo, está marcado para borrar o difiere del baseline.
func (e *Engine) HasChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.workingProducts {
		if s := e.productStateLocked(p); s.New || s.Deleted || s.Dirty {
			return true
		}
	}
	for _, c := range e.workingCategories {
		if s := e.categoryStateLocked(c); s.New || s.Deleted || s.Dirty {
			return true
		}
	}
	return false
}

// DiscardChanges reemplaza toda la copia de trabajo por el baseline.
func (e *Engine) DiscardChanges() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workingProducts = cloneProducts(e.baselineProducts)
	e.workingCategories = cloneCategories(e.baselineCategories)
}

// RevertProduct restaura un producto persistido a su baseline (incluida la marca de borrado).
func (e *Engine) RevertProduct(id entity.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingProductIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	base, ok := e.baselineProduct(id)
	if !ok {
		return fmt.Errorf("%w: un producto nuevo no tiene baseline", domain.ErrInvalidInput)
	}
	e.workingProducts[i] = base.Clone()
	return nil
}

// RevertCategory restaura una categoría persistida a su baseline.
func (e *Engine) RevertCategory(id entity.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.workingCategoryIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	base, ok := e.baselineCategory(id)
	if !ok {
		return fmt.Errorf("%w: una categoría nueva no tiene baseline", domain.ErrInvalidInput)
	}
	e.workingCategories[i] = base.Clone()
	return nil
}

// MergeProducts incorpora resultados de búsqueda al conjunto seguido. Un producto ya seguido
// se devuelve en su versión de trabajo (con ediciones y marcas) en lugar de la del servidor;
// uno desconocido entra a baseline y copia de trabajo.
func (e *Engine) MergeProducts(fetched []entity.Product) []entity.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]entity.Product, 0, len(fetched))
	for _, f := range fetched {
		if i := e.workingProductIndex(f.ID); i >= 0 {
			out = append(out, e.workingProducts[i].Clone())
			continue
		}
		e.baselineProducts = append(e.baselineProducts, f.Clone())
		e.workingProducts = append(e.workingProducts, f.Clone())
		out = append(out, f.Clone())
	}
	return out
}

// MergeCategories igual que MergeProducts para categorías.
func (e *Engine) MergeCategories(fetched []entity.Category) []entity.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]entity.Category, 0, len(fetched))
	for _, f := range fetched {
		if i := e.workingCategoryIndex(f.ID); i >= 0 {
			out = append(out, e.workingCategories[i].Clone())
			continue
		}
		e.baselineCategories = append(e.baselineCategories, f.Clone())
		e.workingCategories = append(e.workingCategories, f.Clone())
		out = append(out, f.Clone())
	}
	return out
}

// OverlayProducts reemplaza cada producto seguido por su versión de trabajo actual; los que
// ya no se siguen (p. ej. borrados tras un guardado) se devuelven tal cual.
func (e *Engine) OverlayProducts(items []entity.Product) []entity.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]entity.Product, 0, len(items))
	for _, p := range items {
		if i := e.workingProductIndex(p.ID); i >= 0 {
			out = append(out, e.workingProducts[i].Clone())
			continue
		}
		out = append(out, p)
	}
	return out
}

// OverlayCategories igual que OverlayProducts para categorías.
func (e *Engine) OverlayCategories(items []entity.Category) []entity.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]entity.Category, 0, len(items))
	for _, c := range items {
		if i := e.workingCategoryIndex(c.ID); i >= 0 {
			out = append(out, e.workingCategories[i].Clone())
			continue
		}
		out = append(out, c)
	}
	return out
}

// ── Helpers (requieren e.mu) ────────────────────────────────────────────────

func (e *Engine) productStateLocked(p entity.Product) RowState {
	st := RowState{New: p.IsNew(), Deleted: p.Deleted}
	if base, ok := e.baselineProduct(p.ID); ok {
		st.Dirty = entity.ProductDirty(base, p)
	} else {
		st.Dirty = true
	}
	return st
}

func (e *Engine) categoryStateLocked(c entity.Category) RowState {
	st := RowState{New: c.IsNew(), Deleted: c.Deleted}
	if base, ok := e.baselineCategory(c.ID); ok {
		st.Dirty = entity.CategoryDirty(base, c)
	} else {
		st.Dirty = true
	}
	return st
}

func (e *Engine) workingProductIndex(id entity.Identity) int {
	for i, p := range e.workingProducts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) workingCategoryIndex(id entity.Identity) int {
	for i, c := range e.workingCategories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) baselineProduct(id entity.Identity) (entity.Product, bool) {
	if !id.IsPersisted() {
		return entity.Product{}, false
	}
	for _, p := range e.baselineProducts {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (e *Engine) baselineCategory(id entity.Identity) (entity.Category, bool) {
	if !id.IsPersisted() {
		return entity.Category{}, false
	}
	for _, c := range e.baselineCategories {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Category{}, false
}

func cloneProducts(in []entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}

func cloneCategories(in []entity.Category) []entity.Category {
	out := make([]entity.Category, 0, len(in))
	for _, c := range in {
		out = append(out, c.Clone())
	}
	return out
}
