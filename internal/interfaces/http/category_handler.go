package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-admin/internal/application/dto"
	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
)

// CategoryHandler edición local de categorías y sus traducciones (protegido).
type CategoryHandler struct {
	engine *workspace.Engine
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(engine *workspace.Engine) *CategoryHandler {
	return &CategoryHandler{engine: engine}
}

func categoryID(c *fiber.Ctx) entity.Identity {
	return entity.ParseIdentity(c.Params("id"))
}

// List godoc
// @Summary      Filas de trabajo de categorías
// @Tags         categories
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	rows := h.engine.Categories()
	out := dto.CategoryListResponse{Items: make([]dto.CategoryResponse, 0, len(rows))}
	for _, r := range rows {
		out.Items = append(out.Items, toCategoryRowResponse(r))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar categoría nueva (local)
// @Tags         categories
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cat, err := h.engine.AddCategory(in.Name)
	if err != nil {
		return respondError(c, err)
	}
	row, err := h.engine.Category(cat.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCategoryRowResponse(row))
}

// GetByID godoc
// @Summary      Obtener categoría de trabajo
// @Tags         categories
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "Nombre o id local (new:...)"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	row, err := h.engine.Category(categoryID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCategoryRowResponse(row))
}

// Remove godoc
// @Summary      Quitar una categoría nueva (sin guardar)
// @Tags         categories
// @Security     Session
// @Param        id   path  string  true  "id local (new:...)"
// @Success      204
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Remove(c *fiber.Ctx) error {
	if err := h.engine.RemoveNewCategory(categoryID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleDeleted godoc
// @Summary      Alternar la marca de borrado
// @Tags         categories
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "Nombre o id local"
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/categories/{id}/delete-toggle [post]
func (h *CategoryHandler) ToggleDeleted(c *fiber.Ctx) error {
	id := categoryID(c)
	deleted, err := h.engine.MarkCategoryDeleted(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id.String(), Deleted: deleted})
}

// Revert godoc
// @Summary      Revertir la categoría a su baseline
// @Tags         categories
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "Nombre"
// @Success      200  {object}  dto.CategoryResponse
// @Router       /api/categories/{id}/revert [post]
func (h *CategoryHandler) Revert(c *fiber.Ctx) error {
	if err := h.engine.RevertCategory(categoryID(c)); err != nil {
		return respondError(c, err)
	}
	return h.GetByID(c)
}

// AddTranslation godoc
// @Summary      Agregar traducción
// @Tags         categories
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Nombre o id local"
// @Param        body  body  dto.TranslationRequest  true  "Idioma (dos letras) y texto"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/translations [post]
func (h *CategoryHandler) AddTranslation(c *fiber.Ctx) error {
	var in dto.TranslationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.engine.AddTranslation(categoryID(c), in.Lang, in.Text); err != nil {
		return respondError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return h.GetByID(c)
}

// EditTranslation godoc
// @Summary      Reemplazar el texto de una traducción
// @Tags         categories
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Nombre o id local"
// @Param        lang  path  string                  true  "Idioma"
// @Param        body  body  dto.TranslationRequest  true  "Texto nuevo"
// @Success      200   {object}  dto.CategoryResponse
// @Router       /api/categories/{id}/translations/{lang} [put]
func (h *CategoryHandler) EditTranslation(c *fiber.Ctx) error {
	var in dto.TranslationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.engine.EditTranslation(categoryID(c), c.Params("lang"), in.Text); err != nil {
		return respondError(c, err)
	}
	return h.GetByID(c)
}

// RemoveTranslation godoc
// @Summary      Quitar una traducción
// @Tags         categories
// @Security     Session
// @Produce      json
// @Param        id    path  string  true  "Nombre o id local"
// @Param        lang  path  string  true  "Idioma"
// @Success      200   {object}  dto.CategoryResponse
// @Router       /api/categories/{id}/translations/{lang} [delete]
func (h *CategoryHandler) RemoveTranslation(c *fiber.Ctx) error {
	if err := h.engine.RemoveTranslation(categoryID(c), c.Params("lang")); err != nil {
		return respondError(c, err)
	}
	return h.GetByID(c)
}
