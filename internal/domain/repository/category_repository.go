package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// CategoryRepository define el puerto de acceso remoto a categorías y sus traducciones (DIP).
type CategoryRepository interface {
	List(ctx context.Context, nextToken string) (entity.Page[entity.Category], error)
	Search(ctx context.Context, text string) ([]entity.Category, error)
	// GetByName devuelve nil, nil si no existe.
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	UpsertTranslation(ctx context.Context, category string, t entity.Translation) error
	RemoveTranslation(ctx context.Context, category, lang string) error
}
