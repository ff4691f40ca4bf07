package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/movement"
)

// EntryHandler maneja las entradas de mercancía (protegido).
type EntryHandler struct {
	uc *movement.EntryUseCase
}

// NewEntryHandler construye el handler.
func NewEntryHandler(uc *movement.EntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// List GET /api/entradas.
func (h *EntryHandler) List(c *fiber.Ctx) error {
	site, err := scopedSite(c)
	if err != nil {
		return respondError(c, err)
	}
	entries, err := h.uc.List(c.Context(), site)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// Get GET /api/entradas/:id.
func (h *EntryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	e, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(e)
}

// Create POST /api/entradas.
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := authorizeSite(c, in.Site); err != nil {
		return respondError(c, err)
	}
	e, err := h.uc.Create(c.Context(), GetName(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{ID: e.ID})
}

// Update PUT /api/entradas/:id: corrección revertir-y-reaplicar.
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := authorizeSite(c, in.Site); err != nil {
		return respondError(c, err)
	}
	e, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementResponse{ID: e.ID})
}

// Delete DELETE /api/entradas/:id.
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "entrada eliminada"})
}
