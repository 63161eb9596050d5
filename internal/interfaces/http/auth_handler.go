package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-admin/internal/application/auth"
	"github.com/jhoicas/Catalogo-admin/internal/application/dto"
)

// SessionHandler login, logout y estado de la sesión del panel.
type SessionHandler struct {
	provider *auth.CredentialProvider
	onLogin  func(c *fiber.Ctx) error
}

// NewSessionHandler construye el handler. onLogin (opcional) corre tras un login correcto,
// p. ej. para cargar el conjunto de trabajo.
func NewSessionHandler(provider *auth.CredentialProvider, onLogin func(c *fiber.Ctx) error) *SessionHandler {
	return &SessionHandler{provider: provider, onLogin: onLogin}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	if _, err := h.provider.Login(c.UserContext(), in.Username, in.Password); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}
	if h.onLogin != nil {
		if err := h.onLogin(c); err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(dto.SessionResponse{Authenticated: true, Username: h.provider.Username()})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Success      204
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.provider.Logout(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Status godoc
// @Summary      Estado de la sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.SessionResponse{
		Authenticated: h.provider.IsAuthenticated(),
		Username:      h.provider.Username(),
	})
}
