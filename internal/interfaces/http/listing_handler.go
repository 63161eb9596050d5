package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-admin/internal/application/dto"
	"github.com/jhoicas/Catalogo-admin/internal/application/search"
	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// listing operaciones comunes de una lista paginada, sin importar el tipo de ítem.
type listing interface {
	snapshot() any
	apply(ctx context.Context, raw string) error
	more(ctx context.Context) error
	clear(ctx context.Context) error
}

type typedListing[T, R any] struct {
	l    *search.Listing[T]
	item func(T) R
}

func (t typedListing[T, R]) snapshot() any {
	st := t.l.State()
	items := make([]R, 0, len(st.Items))
	for _, it := range st.Items {
		items = append(items, t.item(it))
	}
	return dto.ListingResponse[R]{
		Query:   st.Query.Raw,
		Kind:    string(st.Query.Kind),
		Items:   items,
		HasMore: st.HasMore,
		Loading: st.Loading,
	}
}

func (t typedListing[T, R]) apply(ctx context.Context, raw string) error { return t.l.Apply(ctx, raw) }
func (t typedListing[T, R]) more(ctx context.Context) error             { return t.l.LoadMore(ctx) }
func (t typedListing[T, R]) clear(ctx context.Context) error            { return t.l.Clear(ctx) }

// ListingHandler listas paginadas con búsqueda (products, categories, order-events).
type ListingHandler struct {
	lists map[string]listing
}

// NewListingHandler construye el handler. Los ítems de productos y categorías se devuelven con
// el estado de su fila de trabajo cuando la tienen.
func NewListingHandler(listings *search.Listings, engine *workspace.Engine) *ListingHandler {
	return &ListingHandler{lists: map[string]listing{
		"products": typedListing[entity.Product, dto.ProductResponse]{
			l: listings.Products,
			item: func(p entity.Product) dto.ProductResponse {
				if row, err := engine.Product(p.ID); err == nil {
					return toProductRowResponse(row)
				}
				return toProductResponse(p, nil)
			},
		},
		"categories": typedListing[entity.Category, dto.CategoryResponse]{
			l: listings.Categories,
			item: func(c entity.Category) dto.CategoryResponse {
				if row, err := engine.Category(c.ID); err == nil {
					return toCategoryRowResponse(row)
				}
				return toCategoryResponse(c, nil)
			},
		},
		"order-events": typedListing[entity.OrderEvent, dto.OrderEventResponse]{
			l:    listings.OrderEvents,
			item: toOrderEventResponse,
		},
	}}
}

func (h *ListingHandler) lookup(name string) (listing, error) {
	l, ok := h.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: lista %q", domain.ErrNotFound, name)
	}
	return l, nil
}

// Get godoc
// @Summary      Estado de una lista
// @Tags         listings
// @Security     Session
// @Produce      json
// @Param        list  path  string  true  "products, categories u order-events"
// @Success      200   {object}  dto.ListingResponse[dto.ProductResponse]
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/listings/{list} [get]
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	l, err := h.lookup(c.Params("list"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(l.snapshot())
}

// Search godoc
// @Summary      Aplicar una búsqueda
// @Description  Texto libre o directivas: "sku:A,B", "category:Nombre", "order:ID". Vacío lista sin filtro.
// @Tags         listings
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        list  path  string             true  "products, categories u order-events"
// @Param        body  body  dto.SearchRequest  true  "Consulta"
// @Success      200   {object}  dto.ListingResponse[dto.ProductResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/listings/{list}/search [post]
func (h *ListingHandler) Search(c *fiber.Ctx) error {
	l, err := h.lookup(c.Params("list"))
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SearchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	if err := l.apply(c.UserContext(), in.Query); err != nil {
		return respondError(c, err)
	}
	return c.JSON(l.snapshot())
}

// More godoc
// @Summary      Cargar la página siguiente de la consulta activa
// @Tags         listings
// @Security     Session
// @Produce      json
// @Param        list  path  string  true  "products, categories u order-events"
// @Success      200   {object}  dto.ListingResponse[dto.ProductResponse]
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/listings/{list}/more [post]
func (h *ListingHandler) More(c *fiber.Ctx) error {
	l, err := h.lookup(c.Params("list"))
	if err != nil {
		return respondError(c, err)
	}
	if err := l.more(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(l.snapshot())
}

// Clear godoc
// @Summary      Quitar la búsqueda y volver a la primera página
// @Tags         listings
// @Security     Session
// @Produce      json
// @Param        list  path  string  true  "products, categories u order-events"
// @Success      200   {object}  dto.ListingResponse[dto.ProductResponse]
// @Router       /api/listings/{list}/clear [post]
func (h *ListingHandler) Clear(c *fiber.Ctx) error {
	l, err := h.lookup(c.Params("list"))
	if err != nil {
		return respondError(c, err)
	}
	if err := l.clear(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(l.snapshot())
}
