package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-admin/internal/application/dto"
	"github.com/jhoicas/Catalogo-admin/internal/domain"
)

// LoginPath destino de la redirección cuando la sesión no es válida.
const LoginPath = "/login"

// respondError traduce errores de dominio a respuestas HTTP. Un error no autenticado siempre
// gana: la sesión es fatal y la UI debe ir al login.
func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return loginRequired(c)
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "hay cambios inválidos; corríjalos antes de guardar", Violations: vErr.Violations,
		})
	}
	var sErr *domain.SaveError
	if errors.As(err, &sErr) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "SAVE_FAILED", Message: sErr.Error(), Failures: sErr.Failures,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrImmutableField):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "IMMUTABLE_FIELD", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateKey), errors.Is(err, domain.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrLastLocalization):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LAST_LOCALIZATION", Message: err.Error()})
	case errors.Is(err, domain.ErrSaveInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SAVE_IN_PROGRESS", Message: err.Error()})
	case errors.Is(err, domain.ErrListingBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LISTING_BUSY", Message: err.Error()})
	}

	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) {
		code := "GATEWAY_ERROR"
		msg := err.Error()
		if gwErr.Kind == domain.KindApplication {
			code, msg = "REMOTE_ERROR", gwErr.Message
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// loginRequired 401 con la señal de redirección en Location.
func loginRequired(c *fiber.Ctx) error {
	c.Set(fiber.HeaderLocation, LoginPath)
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code: "LOGIN_REQUIRED", Message: "la sesión expiró o no existe; inicie sesión",
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
