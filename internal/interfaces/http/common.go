package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
)

// respondError mapea los errores de dominio a códigos HTTP. El núcleo solo
// expone la categoría; el detalle viaja en el mensaje.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrIncompleteCount):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INCOMPLETE_COUNT", Message: err.Error()})
	case errors.Is(err, domain.ErrConstraint):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONSTRAINT", Message: err.Error()})
	case errors.Is(err, domain.ErrConnection):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DB_UNAVAILABLE", Message: "base de datos no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// parseID extrae y valida el parámetro :id de la ruta.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation
	}
	return id, nil
}
