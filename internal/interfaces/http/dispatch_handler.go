package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/movement"
)

// DispatchHandler maneja las salidas hacia colaboradores (protegido).
type DispatchHandler struct {
	uc *movement.DispatchUseCase
}

// NewDispatchHandler construye el handler.
func NewDispatchHandler(uc *movement.DispatchUseCase) *DispatchHandler {
	return &DispatchHandler{uc: uc}
}

// List GET /api/salidas.
func (h *DispatchHandler) List(c *fiber.Ctx) error {
	site, err := scopedSite(c)
	if err != nil {
		return respondError(c, err)
	}
	dispatches, err := h.uc.List(c.Context(), site)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dispatches)
}

// Get GET /api/salidas/:id.
func (h *DispatchHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	d, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// Create POST /api/salidas. El sobregiro no rechaza la salida: viaja como
// advertencias en la respuesta.
func (h *DispatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := authorizeSite(c, in.Site); err != nil {
		return respondError(c, err)
	}
	d, warnings, err := h.uc.Create(c.Context(), GetName(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{ID: d.ID, Warnings: warnings})
}

// Update PUT /api/salidas/:id: solo salidas Pendiente.
func (h *DispatchHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := authorizeSite(c, in.Site); err != nil {
		return respondError(c, err)
	}
	d, warnings, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementResponse{ID: d.ID, Warnings: warnings})
}

// Approve PUT /api/salidas/:id/aprobar: transición terminal, no toca stock.
func (h *DispatchHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Approve(c.Context(), id, GetName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "salida aprobada"})
}

// Delete DELETE /api/salidas/:id: solo salidas Pendiente.
func (h *DispatchHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "salida eliminada"})
}
