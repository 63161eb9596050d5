package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-admin/internal/application/dto"
	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// ProductHandler edición local de productos sobre la copia de trabajo (protegido).
// Ninguna ruta llama al gateway: los cambios viajan en el guardado.
type ProductHandler struct {
	engine *workspace.Engine
}

// NewProductHandler construye el handler.
func NewProductHandler(engine *workspace.Engine) *ProductHandler {
	return &ProductHandler{engine: engine}
}

func productID(c *fiber.Ctx) entity.Identity {
	return entity.ParseIdentity(c.Params("id"))
}

func localeKey(c *fiber.Ctx) entity.LocaleKey {
	return entity.LocaleKey{
		Lang:    strings.ToLower(c.Params("lang")),
		Country: strings.ToLower(c.Params("country")),
	}
}

// List godoc
// @Summary      Filas de trabajo de productos
// @Tags         products
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	rows := h.engine.Products()
	out := dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(rows))}
	for _, r := range rows {
		out.Items = append(out.Items, toProductRowResponse(r))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar producto nuevo (local)
// @Tags         products
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  false  "SKU y categoría iniciales"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	p := h.engine.AddProduct(strings.TrimSpace(in.SKU), strings.TrimSpace(in.Category))
	row, err := h.engine.Product(p.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductRowResponse(row))
}

// GetByID godoc
// @Summary      Obtener fila de trabajo
// @Tags         products
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "SKU o id local (new:...)"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	row, err := h.engine.Product(productID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductRowResponse(row))
}

// EditField godoc
// @Summary      Editar un campo del producto
// @Tags         products
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "SKU o id local"
// @Param        body  body  dto.FieldEditRequest  true  "sku, category, imageUrl, productStatus o quantityInStock"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) EditField(c *fiber.Ctx) error {
	var in dto.FieldEditRequest
	if err := c.BodyParser(&in); err != nil || in.Field == "" {
		return invalidBody(c)
	}
	id := productID(c)
	if err := h.engine.EditProductField(id, in.Field, in.Value); err != nil {
		return respondError(c, err)
	}
	return h.GetByID(c)
}

// Remove godoc
// @Summary      Quitar un producto nuevo (sin guardar)
// @Tags         products
// @Security     Session
// @Param        id   path  string  true  "id local (new:...)"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	if err := h.engine.RemoveNewProduct(productID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleDeleted godoc
// @Summary      Alternar la marca de borrado
// @Tags         products
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "SKU o id local"
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/products/{id}/delete-toggle [post]
func (h *ProductHandler) ToggleDeleted(c *fiber.Ctx) error {
	id := productID(c)
	deleted, err := h.engine.MarkProductDeleted(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id.String(), Deleted: deleted})
}

// Revert godoc
// @Summary      Revertir el producto a su baseline
// @Tags         products
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "SKU"
// @Success      200  {object}  dto.ProductResponse
// @Router       /api/products/{id}/revert [post]
func (h *ProductHandler) Revert(c *fiber.Ctx) error {
	if err := h.engine.RevertProduct(productID(c)); err != nil {
		return respondError(c, err)
	}
	return h.GetByID(c)
}

// AddLocalization godoc
// @Summary      Agregar localización
// @Tags         products
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "SKU o id local"
// @Param        body  body  dto.LocalizationRequest  true  "Localización"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/localizations [post]
func (h *ProductHandler) AddLocalization(c *fiber.Ctx) error {
	var in dto.LocalizationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.engine.AddLocalization(productID(c), toLocalization(in)); err != nil {
		return respondError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return h.GetByID(c)
}

// EditLocalization godoc
// @Summary      Editar un campo de una localización
// @Tags         products
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "SKU o id local"
// @Param        lang     path  string                true  "Idioma"
// @Param        country  path  string                true  "País"
// @Param        body     body  dto.FieldEditRequest  true  "lang, country, productName, description, price o currency"
// @Success      200      {object}  dto.ProductResponse
// @Router       /api/products/{id}/localizations/{lang}/{country} [patch]
func (h *ProductHandler) EditLocalization(c *fiber.Ctx) error {
	var in dto.FieldEditRequest
	if err := c.BodyParser(&in); err != nil || in.Field == "" {
		return invalidBody(c)
	}
	if err := h.engine.EditLocalization(productID(c), localeKey(c), in.Field, in.Value); err != nil {
		return respondError(c, err)
	}
	return h.GetByID(c)
}

// RemoveLocalization godoc
// @Summary      Quitar una localización
// @Tags         products
// @Security     Session
// @Produce      json
// @Param        id       path  string  true  "SKU o id local"
// @Param        lang     path  string  true  "Idioma"
// @Param        country  path  string  true  "País"
// @Success      200      {object}  dto.ProductResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/products/{id}/localizations/{lang}/{country} [delete]
func (h *ProductHandler) RemoveLocalization(c *fiber.Ctx) error {
	if err := h.engine.RemoveLocalization(productID(c), localeKey(c)); err != nil {
		return respondError(c, err)
	}
	return h.GetByID(c)
}
