package search

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/internal/domain/repository"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

// Tracker conjunto de trabajo en el que se integran los resultados de búsqueda.
// Merge incorpora lo desconocido; Overlay solo superpone lo que ya se sigue.
type Tracker interface {
	MergeProducts(fetched []entity.Product) []entity.Product
	MergeCategories(fetched []entity.Category) []entity.Category
	OverlayProducts(items []entity.Product) []entity.Product
	OverlayCategories(items []entity.Category) []entity.Category
}

// Service despacha cada consulta a la operación del gateway que le corresponde y pasa los
// resultados por el conjunto de trabajo para no perder ediciones sin guardar.
type Service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	events     repository.OrderEventRepository
	tracker    Tracker
	log        *logger.Logger
}

// NewService construye el servicio de búsqueda.
func NewService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	events repository.OrderEventRepository,
	tracker Tracker,
	log *logger.Logger,
) *Service {
	return &Service{
		products:   products,
		categories: categories,
		events:     events,
		tracker:    tracker,
		log:        log.Component("search"),
	}
}

// Products pagina productos según la consulta.
func (s *Service) Products(ctx context.Context, q Query, nextToken string) (entity.Page[entity.Product], error) {
	var (
		page entity.Page[entity.Product]
		err  error
	)
	switch q.Kind {
	case KindAll:
		page, err = s.products.List(ctx, nextToken)
	case KindCategory:
		page, err = s.products.ListByCategory(ctx, q.Text, nextToken)
	case KindText:
		page, err = s.products.Search(ctx, q.Text, nextToken)
	case KindSKUs:
		// El lote por SKU devuelve todo en una sola página.
		if nextToken != "" {
			return entity.Page[entity.Product]{}, nil
		}
		page.Items, err = s.products.GetBySKUs(ctx, q.SKUs)
	default:
		return entity.Page[entity.Product]{}, unsupported("productos", q)
	}
	if err != nil {
		return entity.Page[entity.Product]{}, err
	}

	page.Items = s.tracker.MergeProducts(page.Items)
	s.log.Debug().Str("kind", string(q.Kind)).Int("items", len(page.Items)).Bool("more", page.HasMore()).Msg("búsqueda de productos")
	return page, nil
}

// Categories pagina categorías según la consulta. Solo el listado completo es paginado.
func (s *Service) Categories(ctx context.Context, q Query, nextToken string) (entity.Page[entity.Category], error) {
	var (
		page entity.Page[entity.Category]
		err  error
	)
	switch q.Kind {
	case KindAll:
		page, err = s.categories.List(ctx, nextToken)
	case KindText:
		if nextToken != "" {
			return entity.Page[entity.Category]{}, nil
		}
		page.Items, err = s.categories.Search(ctx, q.Text)
	case KindCategory:
		if nextToken != "" {
			return entity.Page[entity.Category]{}, nil
		}
		var c *entity.Category
		c, err = s.categories.GetByName(ctx, q.Text)
		if c != nil {
			page.Items = []entity.Category{*c}
		}
	default:
		return entity.Page[entity.Category]{}, unsupported("categorías", q)
	}
	if err != nil {
		return entity.Page[entity.Category]{}, err
	}

	page.Items = s.tracker.MergeCategories(page.Items)
	return page, nil
}

// OrderEvents pagina el log de eventos de pago; texto libre o "order:" filtran por orden.
func (s *Service) OrderEvents(ctx context.Context, q Query, nextToken string) (entity.Page[entity.OrderEvent], error) {
	switch q.Kind {
	case KindAll:
		return s.events.List(ctx, "", nextToken)
	case KindOrder, KindText:
		return s.events.List(ctx, q.Text, nextToken)
	default:
		return entity.Page[entity.OrderEvent]{}, unsupported("eventos", q)
	}
}

func unsupported(scope string, q Query) error {
	return fmt.Errorf("%w: la búsqueda %q no aplica a %s", domain.ErrInvalidInput, q.Raw, scope)
}

// Listings las tres listas paginadas del panel.
type Listings struct {
	Products    *Listing[entity.Product]
	Categories  *Listing[entity.Category]
	OrderEvents *Listing[entity.OrderEvent]
}

// NewListings arma las listas sobre el servicio. Productos y categorías se leen siempre con
// la copia de trabajo superpuesta.
func (s *Service) NewListings() *Listings {
	return &Listings{
		Products:    NewListing[entity.Product](s.Products, s.tracker.OverlayProducts),
		Categories:  NewListing[entity.Category](s.Categories, s.tracker.OverlayCategories),
		OrderEvents: NewListing[entity.OrderEvent](s.OrderEvents, nil),
	}
}
