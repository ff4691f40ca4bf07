package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/orders"
)

// OrderHandler maneja los pedidos a proveedor (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List GET /api/pedidos.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/pedidos.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.uc.Create(c.Context(), GetName(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// Suggestions GET /api/pedidos/sugerencias: artículos bajo mínimo.
func (h *OrderHandler) Suggestions(c *fiber.Ctx) error {
	site, err := scopedSite(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.Suggestions(c.Context(), site)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
