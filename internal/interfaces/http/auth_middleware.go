package http

import (
	"github.com/gofiber/fiber/v2"
)

// sessionChecker contrato mínimo del proveedor de credenciales que necesita el middleware.
// Lo implementa *auth.CredentialProvider.
type sessionChecker interface {
	IsAuthenticated() bool
}

// RequireSession corta con 401 + Location: /login si el panel no tiene sesión. La validez
// del token se comprueba en cada llamada al gateway; aquí solo se evita trabajar sin sesión.
func RequireSession(sessions sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sessions.IsAuthenticated() {
			return loginRequired(c)
		}
		return c.Next()
	}
}
