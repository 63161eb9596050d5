package graphql

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre el gateway GraphQL.
type ProductRepo struct {
	c        *Client
	pageSize int
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(c *Client, pageSize int) *ProductRepo {
	return &ProductRepo{c: c, pageSize: pageSize}
}

// List una página del listado completo de productos.
func (r *ProductRepo) List(ctx context.Context, nextToken string) (entity.Page[entity.Product], error) {
	var out struct {
		ListProducts pageWire[productWire] `json:"listProducts"`
	}
	if err := r.c.Execute(ctx, opListProducts, pageVars(r.pageSize, nextToken), &out); err != nil {
		return entity.Page[entity.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return toProductPage(out.ListProducts), nil
}

// ListByCategory una página de productos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, category, nextToken string) (entity.Page[entity.Product], error) {
	vars := pageVars(r.pageSize, nextToken)
	vars["category"] = category
	var out struct {
		ProductsByCategory pageWire[productWire] `json:"productsByCategory"`
	}
	if err := r.c.Execute(ctx, opProductsByCategory, vars, &out); err != nil {
		return entity.Page[entity.Product]{}, fmt.Errorf("products by category: %w", err)
	}
	return toProductPage(out.ProductsByCategory), nil
}

// GetBySKUs lookup por lote de identificadores; los SKU inexistentes simplemente no vuelven.
func (r *ProductRepo) GetBySKUs(ctx context.Context, skus []string) ([]entity.Product, error) {
	var out struct {
		BatchGetProducts []*productWire `json:"batchGetProducts"`
	}
	if err := r.c.Execute(ctx, opBatchGetProducts, map[string]any{"skus": skus}, &out); err != nil {
		return nil, fmt.Errorf("batch get products: %w", err)
	}
	list := make([]entity.Product, 0, len(out.BatchGetProducts))
	for _, w := range out.BatchGetProducts {
		if w != nil {
			list = append(list, toProduct(*w))
		}
	}
	return list, nil
}

// Search búsqueda de texto libre paginada.
func (r *ProductRepo) Search(ctx context.Context, text, nextToken string) (entity.Page[entity.Product], error) {
	vars := pageVars(r.pageSize, nextToken)
	vars["text"] = text
	var out struct {
		SearchProducts pageWire[productWire] `json:"searchProducts"`
	}
	if err := r.c.Execute(ctx, opSearchProducts, vars, &out); err != nil {
		return entity.Page[entity.Product]{}, fmt.Errorf("search products: %w", err)
	}
	return toProductPage(out.SearchProducts), nil
}

// Create crea el producto junto con sus localizaciones.
func (r *ProductRepo) Create(ctx context.Context, product entity.Product) error {
	if err := r.c.Execute(ctx, opCreateProduct, map[string]any{"input": createProductInput(product)}, nil); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update envía solo los campos del parche.
func (r *ProductRepo) Update(ctx context.Context, sku string, patch entity.ProductPatch) error {
	if err := r.c.Execute(ctx, opUpdateProduct, map[string]any{"input": updateProductInput(sku, patch)}, nil); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por SKU.
func (r *ProductRepo) Delete(ctx context.Context, sku string) error {
	if err := r.c.Execute(ctx, opDeleteProduct, map[string]any{"sku": sku}, nil); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// AddLocalizations alta en lote de localizaciones de un producto.
func (r *ProductRepo) AddLocalizations(ctx context.Context, sku string, locs []entity.Localization) error {
	vars := map[string]any{"sku": sku, "localizations": toLocalizationInputs(locs)}
	if err := r.c.Execute(ctx, opAddLocalizations, vars, nil); err != nil {
		return fmt.Errorf("add localizations: %w", err)
	}
	return nil
}

// UpdateLocalizations modificación en lote de localizaciones de un producto.
func (r *ProductRepo) UpdateLocalizations(ctx context.Context, sku string, locs []entity.Localization) error {
	vars := map[string]any{"sku": sku, "localizations": toLocalizationInputs(locs)}
	if err := r.c.Execute(ctx, opUpdateLocalizations, vars, nil); err != nil {
		return fmt.Errorf("update localizations: %w", err)
	}
	return nil
}

// RemoveLocalization baja de una localización por (lang, country).
func (r *ProductRepo) RemoveLocalization(ctx context.Context, sku string, key entity.LocaleKey) error {
	vars := map[string]any{"sku": sku, "lang": key.Lang, "country": key.Country}
	if err := r.c.Execute(ctx, opRemoveLocalization, vars, nil); err != nil {
		return fmt.Errorf("remove localization: %w", err)
	}
	return nil
}
