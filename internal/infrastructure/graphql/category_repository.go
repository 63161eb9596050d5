package graphql

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre el gateway GraphQL.
type CategoryRepo struct {
	c        *Client
	pageSize int
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(c *Client, pageSize int) *CategoryRepo {
	return &CategoryRepo{c: c, pageSize: pageSize}
}

func (r *CategoryRepo) List(ctx context.Context, nextToken string) (entity.Page[entity.Category], error) {
	var out struct {
		ListCategories pageWire[categoryWire] `json:"listCategories"`
	}
	if err := r.c.Execute(ctx, opListCategories, pageVars(r.pageSize, nextToken), &out); err != nil {
		return entity.Page[entity.Category]{}, fmt.Errorf("list categories: %w", err)
	}
	return entity.Page[entity.Category]{
		Items:     toCategories(out.ListCategories.Items),
		NextToken: deref(out.ListCategories.NextToken),
	}, nil
}

func (r *CategoryRepo) Search(ctx context.Context, text string) ([]entity.Category, error) {
	var out struct {
		SearchCategories []categoryWire `json:"searchCategories"`
	}
	if err := r.c.Execute(ctx, opSearchCategories, map[string]any{"text": text}, &out); err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return toCategories(out.SearchCategories), nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var out struct {
		GetCategory *categoryWire `json:"getCategory"`
	}
	if err := r.c.Execute(ctx, opGetCategory, map[string]any{"category": name}, &out); err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if out.GetCategory == nil {
		return nil, nil
	}
	c := toCategory(*out.GetCategory)
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, name string) error {
	if err := r.c.Execute(ctx, opCreateCategory, map[string]any{"category": name}, nil); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, name string) error {
	if err := r.c.Execute(ctx, opDeleteCategory, map[string]any{"category": name}, nil); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) UpsertTranslation(ctx context.Context, category string, t entity.Translation) error {
	vars := map[string]any{"category": category, "lang": t.Lang, "text": t.Text}
	if err := r.c.Execute(ctx, opUpsertTranslation, vars, nil); err != nil {
		return fmt.Errorf("upsert translation: %w", err)
	}
	return nil
}

func (r *CategoryRepo) RemoveTranslation(ctx context.Context, category, lang string) error {
	vars := map[string]any{"category": category, "lang": lang}
	if err := r.c.Execute(ctx, opRemoveTranslation, vars, nil); err != nil {
		return fmt.Errorf("remove translation: %w", err)
	}
	return nil
}
