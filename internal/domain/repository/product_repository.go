package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// ProductRepository define el puerto de acceso remoto a productos (DIP).
// Cada método corresponde a una operación con nombre del gateway GraphQL.
type ProductRepository interface {
	List(ctx context.Context, nextToken string) (entity.Page[entity.Product], error)
	ListByCategory(ctx context.Context, category, nextToken string) (entity.Page[entity.Product], error)
	GetBySKUs(ctx context.Context, skus []string) ([]entity.Product, error)
	Search(ctx context.Context, text, nextToken string) (entity.Page[entity.Product], error)
	Create(ctx context.Context, product entity.Product) error
	Update(ctx context.Context, sku string, patch entity.ProductPatch) error
	Delete(ctx context.Context, sku string) error
	AddLocalizations(ctx context.Context, sku string, locs []entity.Localization) error
	UpdateLocalizations(ctx context.Context, sku string, locs []entity.Localization) error
	RemoveLocalization(ctx context.Context, sku string, key entity.LocaleKey) error
}
