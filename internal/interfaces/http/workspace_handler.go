package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-admin/internal/application/dto"
	"github.com/jhoicas/Catalogo-admin/internal/application/workspace"
	"github.com/jhoicas/Catalogo-admin/internal/domain"
)

// WorkspaceHandler operaciones sobre el conjunto de trabajo completo (protegido).
type WorkspaceHandler struct {
	engine *workspace.Engine
}

// NewWorkspaceHandler construye el handler.
func NewWorkspaceHandler(engine *workspace.Engine) *WorkspaceHandler {
	return &WorkspaceHandler{engine: engine}
}

// Refresh godoc
// @Summary      Recargar productos y categorías del servidor
// @Description  Descarta las ediciones locales pendientes.
// @Tags         workspace
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.ChangesResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/workspace/refresh [post]
func (h *WorkspaceHandler) Refresh(c *fiber.Ctx) error {
	if err := h.engine.Refresh(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return h.Changes(c)
}

// Validate godoc
// @Summary      Validar la copia de trabajo
// @Tags         workspace
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.ValidateResponse
// @Router       /api/workspace/validate [post]
func (h *WorkspaceHandler) Validate(c *fiber.Ctx) error {
	violations := h.engine.Validate()
	if violations == nil {
		violations = []domain.Violation{}
	}
	return c.JSON(dto.ValidateResponse{Valid: len(violations) == 0, Violations: violations})
}

// Save godoc
// @Summary      Guardar los cambios pendientes
// @Description  Valida, envía las altas, cambios y bajas al gateway y recarga el conjunto de trabajo.
// @Tags         workspace
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.SaveResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/workspace/save [post]
func (h *WorkspaceHandler) Save(c *fiber.Ctx) error {
	report, err := h.engine.Save(c.UserContext())
	var sErr *domain.SaveError
	if errors.As(err, &sErr) && !errors.Is(err, domain.ErrUnauthenticated) {
		out := toSaveResponse(report)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "SAVE_FAILED", Message: sErr.Error(), Failures: sErr.Failures, Report: &out,
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaveResponse(report))
}

// Discard godoc
// @Summary      Descartar todas las ediciones locales
// @Tags         workspace
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.ChangesResponse
// @Router       /api/workspace/discard [post]
func (h *WorkspaceHandler) Discard(c *fiber.Ctx) error {
	h.engine.DiscardChanges()
	return h.Changes(c)
}

// Changes godoc
// @Summary      Cambios pendientes y guardado en curso
// @Tags         workspace
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.ChangesResponse
// @Router       /api/workspace/changes [get]
func (h *WorkspaceHandler) Changes(c *fiber.Ctx) error {
	return c.JSON(dto.ChangesResponse{HasChanges: h.engine.HasChanges(), Saving: h.engine.Saving()})
}
