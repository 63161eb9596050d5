package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/domain/repository"
)

var (
	_ repository.ProductRepository    = (*ProductStore)(nil)
	_ repository.CategoryRepository   = (*CategoryStore)(nil)
	_ repository.OrderEventRepository = (*EventStore)(nil)
)

// Catalog gateway en memoria con la semántica del servidor: registra cada llamada y permite
// inyectar fallas por operación. Sus vistas Products/Categories/Events implementan los puertos.
type Catalog struct {
	mu         sync.Mutex
	pageSize   int
	products   []entity.Product
	categories []entity.Category
	events     []entity.OrderEvent
	calls      []string
	failures   map[string]error
}

// NewCatalog crea un catálogo vacío con el tamaño de página indicado.
func NewCatalog(pageSize int) *Catalog {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Catalog{pageSize: pageSize, failures: map[string]error{}}
}

// Seed carga estado inicial del "servidor".
func (c *Catalog) Seed(products []entity.Product, categories []entity.Category, events []entity.OrderEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range products {
		p = p.Clone()
		p.ID = entity.Persisted(p.SKU)
		p.Deleted = false
		c.products = append(c.products, p)
	}
	for _, cat := range categories {
		cat = cat.Clone()
		cat.ID = entity.Persisted(cat.Name)
		cat.Deleted = false
		c.categories = append(c.categories, cat)
	}
	c.events = append(c.events, events...)
}

// FailOn hace fallar la operación op sobre key (p. ej. "DeleteCategory", "Tools").
func (c *Catalog) FailOn(op, key string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[op+":"+key] = err
}

// Calls llamadas recibidas, en formato "Operacion:clave".
func (c *Catalog) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

// MutationCalls solo las llamadas que modifican estado.
func (c *Catalog) MutationCalls() []string {
	var out []string
	for _, call := range c.Calls() {
		if !isQuery(call) {
			out = append(out, call)
		}
	}
	return out
}

// ResetCalls olvida el registro de llamadas.
func (c *Catalog) ResetCalls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

// Product estado actual del servidor para un SKU.
func (c *Catalog) Product(sku string) (entity.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.productIndex(sku)
	if i < 0 {
		return entity.Product{}, false
	}
	return c.products[i].Clone(), true
}

// Category estado actual del servidor para una categoría.
func (c *Catalog) Category(name string) (entity.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.categoryIndex(name)
	if i < 0 {
		return entity.Category{}, false
	}
	return c.categories[i].Clone(), true
}

func (c *Catalog) Products() *ProductStore   { return &ProductStore{c} }
func (c *Catalog) Categories() *CategoryStore { return &CategoryStore{c} }
func (c *Catalog) Events() *EventStore        { return &EventStore{c} }

var queryOps = []string{"List", "Search", "Get", "Batch", "ProductsBy"}

func isQuery(call string) bool {
	for _, prefix := range queryOps {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// record registra la llamada y devuelve la falla inyectada, si hay. Requiere c.mu.
func (c *Catalog) record(op, key string) error {
	c.calls = append(c.calls, op+":"+key)
	if err, ok := c.failures[op+":"+key]; ok {
		return err
	}
	return nil
}

func (c *Catalog) productIndex(sku string) int {
	for i, p := range c.products {
		if p.SKU == sku {
			return i
		}
	}
	return -1
}

func (c *Catalog) categoryIndex(name string) int {
	for i, cat := range c.categories {
		if cat.Name == name {
			return i
		}
	}
	return -1
}

func appErr(format string, args ...any) error {
	return &domain.GatewayError{Kind: domain.KindApplication, Message: fmt.Sprintf(format, args...)}
}

func paginate[T any](items []T, pageSize int, token string) (entity.Page[T], error) {
	start := 0
	if token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 || n > len(items) {
			return entity.Page[T]{}, appErr("nextToken inválido: %s", token)
		}
		start = n
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	page := entity.Page[T]{Items: append([]T(nil), items[start:end]...)}
	if end < len(items) {
		page.NextToken = strconv.Itoa(end)
	}
	return page, nil
}

// ── Productos ────────────────────────────────────────────────────────────────

// ProductStore vista de productos del catálogo en memoria.
type ProductStore struct{ c *Catalog }

func (s *ProductStore) List(_ context.Context, nextToken string) (entity.Page[entity.Product], error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("ListProducts", nextToken); err != nil {
		return entity.Page[entity.Product]{}, err
	}
	return paginate(cloneProducts(c.products), c.pageSize, nextToken)
}

func (s *ProductStore) ListByCategory(_ context.Context, category, nextToken string) (entity.Page[entity.Product], error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("ProductsByCategory", category); err != nil {
		return entity.Page[entity.Product]{}, err
	}
	var matches []entity.Product
	for _, p := range c.products {
		if p.Category == category {
			matches = append(matches, p.Clone())
		}
	}
	return paginate(matches, c.pageSize, nextToken)
}

func (s *ProductStore) GetBySKUs(_ context.Context, skus []string) ([]entity.Product, error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("BatchGetProducts", strings.Join(skus, ",")); err != nil {
		return nil, err
	}
	var out []entity.Product
	for _, sku := range skus {
		if i := c.productIndex(sku); i >= 0 {
			out = append(out, c.products[i].Clone())
		}
	}
	return out, nil
}

func (s *ProductStore) Search(_ context.Context, text, nextToken string) (entity.Page[entity.Product], error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("SearchProducts", text); err != nil {
		return entity.Page[entity.Product]{}, err
	}
	needle := strings.ToLower(text)
	var matches []entity.Product
	for _, p := range c.products {
		if productMatches(p, needle) {
			matches = append(matches, p.Clone())
		}
	}
	return paginate(matches, c.pageSize, nextToken)
}

func productMatches(p entity.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.SKU), needle) {
		return true
	}
	for _, l := range p.Localizations {
		if strings.Contains(strings.ToLower(l.ProductName), needle) ||
			strings.Contains(strings.ToLower(l.Description), needle) {
			return true
		}
	}
	return false
}

func (s *ProductStore) Create(_ context.Context, product entity.Product) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("CreateProduct", product.SKU); err != nil {
		return err
	}
	if c.productIndex(product.SKU) >= 0 {
		return appErr("product %s already exists", product.SKU)
	}
	if len(product.Localizations) == 0 {
		return appErr("product %s requires at least one localization", product.SKU)
	}
	p := product.Clone()
	p.ID = entity.Persisted(p.SKU)
	p.Deleted = false
	c.products = append(c.products, p)
	return nil
}

func (s *ProductStore) Update(_ context.Context, sku string, patch entity.ProductPatch) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("UpdateProduct", sku); err != nil {
		return err
	}
	i := c.productIndex(sku)
	if i < 0 {
		return appErr("product %s not found", sku)
	}
	p := &c.products[i]
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.QuantityInStock != nil {
		p.QuantityInStock = *patch.QuantityInStock
	}
	return nil
}

func (s *ProductStore) Delete(_ context.Context, sku string) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("DeleteProduct", sku); err != nil {
		return err
	}
	i := c.productIndex(sku)
	if i < 0 {
		return appErr("product %s not found", sku)
	}
	c.products = append(c.products[:i], c.products[i+1:]...)
	return nil
}

func (s *ProductStore) AddLocalizations(_ context.Context, sku string, locs []entity.Localization) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("AddLocalizations", sku); err != nil {
		return err
	}
	i := c.productIndex(sku)
	if i < 0 {
		return appErr("product %s not found", sku)
	}
	for _, l := range locs {
		if _, _, ok := c.products[i].Localization(l.Key()); ok {
			return appErr("localization %s already exists", l.Key())
		}
	}
	c.products[i].Localizations = append(c.products[i].Localizations, locs...)
	return nil
}

func (s *ProductStore) UpdateLocalizations(_ context.Context, sku string, locs []entity.Localization) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("UpdateLocalizations", sku); err != nil {
		return err
	}
	i := c.productIndex(sku)
	if i < 0 {
		return appErr("product %s not found", sku)
	}
	for _, l := range locs {
		_, j, ok := c.products[i].Localization(l.Key())
		if !ok {
			return appErr("localization %s not found", l.Key())
		}
		c.products[i].Localizations[j] = l
	}
	return nil
}

func (s *ProductStore) RemoveLocalization(_ context.Context, sku string, key entity.LocaleKey) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("RemoveLocalization", sku+"/"+key.String()); err != nil {
		return err
	}
	i := c.productIndex(sku)
	if i < 0 {
		return appErr("product %s not found", sku)
	}
	_, j, ok := c.products[i].Localization(key)
	if !ok {
		return appErr("localization %s not found", key)
	}
	if len(c.products[i].Localizations) == 1 {
		return appErr("product %s must keep one localization", sku)
	}
	locs := c.products[i].Localizations
	c.products[i].Localizations = append(locs[:j], locs[j+1:]...)
	return nil
}

func cloneProducts(in []entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}

// ── Categorías ───────────────────────────────────────────────────────────────

// CategoryStore vista de categorías del catálogo en memoria.
type CategoryStore struct{ c *Catalog }

func (s *CategoryStore) List(_ context.Context, nextToken string) (entity.Page[entity.Category], error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("ListCategories", nextToken); err != nil {
		return entity.Page[entity.Category]{}, err
	}
	out := make([]entity.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.Clone())
	}
	return paginate(out, c.pageSize, nextToken)
}

func (s *CategoryStore) Search(_ context.Context, text string) ([]entity.Category, error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("SearchCategories", text); err != nil {
		return nil, err
	}
	needle := strings.ToLower(text)
	var out []entity.Category
	for _, cat := range c.categories {
		match := strings.Contains(strings.ToLower(cat.Name), needle)
		for _, t := range cat.Translations {
			match = match || strings.Contains(strings.ToLower(t.Text), needle)
		}
		if match {
			out = append(out, cat.Clone())
		}
	}
	return out, nil
}

func (s *CategoryStore) GetByName(_ context.Context, name string) (*entity.Category, error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("GetCategory", name); err != nil {
		return nil, err
	}
	i := c.categoryIndex(name)
	if i < 0 {
		return nil, nil
	}
	cat := c.categories[i].Clone()
	return &cat, nil
}

func (s *CategoryStore) Create(_ context.Context, name string) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("CreateCategory", name); err != nil {
		return err
	}
	if c.categoryIndex(name) >= 0 {
		return appErr("category %s already exists", name)
	}
	c.categories = append(c.categories, entity.Category{ID: entity.Persisted(name), Name: name})
	return nil
}

func (s *CategoryStore) Delete(_ context.Context, name string) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("DeleteCategory", name); err != nil {
		return err
	}
	i := c.categoryIndex(name)
	if i < 0 {
		return appErr("category %s not found", name)
	}
	c.categories = append(c.categories[:i], c.categories[i+1:]...)
	return nil
}

func (s *CategoryStore) UpsertTranslation(_ context.Context, category string, t entity.Translation) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("UpsertCategoryTranslation", category+"/"+t.Lang); err != nil {
		return err
	}
	i := c.categoryIndex(category)
	if i < 0 {
		return appErr("category %s not found", category)
	}
	if _, j, ok := c.categories[i].Translation(t.Lang); ok {
		c.categories[i].Translations[j] = t
		return nil
	}
	c.categories[i].Translations = append(c.categories[i].Translations, t)
	return nil
}

func (s *CategoryStore) RemoveTranslation(_ context.Context, category, lang string) error {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("RemoveCategoryTranslation", category+"/"+lang); err != nil {
		return err
	}
	i := c.categoryIndex(category)
	if i < 0 {
		return appErr("category %s not found", category)
	}
	_, j, ok := c.categories[i].Translation(lang)
	if !ok {
		return appErr("translation %s not found", lang)
	}
	ts := c.categories[i].Translations
	c.categories[i].Translations = append(ts[:j], ts[j+1:]...)
	return nil
}

// ── Eventos de pago ──────────────────────────────────────────────────────────

// EventStore vista del log de eventos de pago.
type EventStore struct{ c *Catalog }

func (s *EventStore) List(_ context.Context, orderID, nextToken string) (entity.Page[entity.OrderEvent], error) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record("ListOrderEvents", orderID); err != nil {
		return entity.Page[entity.OrderEvent]{}, err
	}
	var matches []entity.OrderEvent
	for _, e := range c.events {
		if orderID == "" || e.OrderID == orderID {
			matches = append(matches, e)
		}
	}
	return paginate(matches, c.pageSize, nextToken)
}
