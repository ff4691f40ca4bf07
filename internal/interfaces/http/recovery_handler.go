package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/movement"
)

// RecoveryHandler maneja las recuperaciones de equipo (protegido).
type RecoveryHandler struct {
	uc *movement.RecoveryUseCase
}

// NewRecoveryHandler construye el handler.
func NewRecoveryHandler(uc *movement.RecoveryUseCase) *RecoveryHandler {
	return &RecoveryHandler{uc: uc}
}

// List GET /api/recuperaciones.
func (h *RecoveryHandler) List(c *fiber.Ctx) error {
	site, err := scopedSite(c)
	if err != nil {
		return respondError(c, err)
	}
	recoveries, err := h.uc.List(c.Context(), site)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recoveries)
}

// Get GET /api/recuperaciones/:id.
func (h *RecoveryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// Create POST /api/recuperaciones. Cada línea lleva su destino; las que van a
// Desecho no tocan el ledger.
func (h *RecoveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecoveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Create(c.Context(), GetName(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{ID: rec.ID})
}
