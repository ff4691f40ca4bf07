package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/stock"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
)

// StockHandler maneja el inventario por sitio (protegido).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List GET /api/inventario/:sitio.
func (h *StockHandler) List(c *fiber.Ctx) error {
	site := c.Params("sitio")
	if err := authorizeSite(c, site); err != nil {
		return respondError(c, err)
	}
	items, err := h.uc.ListBySite(c.Context(), site)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toStockResponse(it))
	}
	return c.JSON(out)
}

// Set POST /api/inventario: alta o ajuste manual de un artículo.
func (h *StockHandler) Set(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := authorizeSite(c, in.Site); err != nil {
		return respondError(c, err)
	}
	item, err := h.uc.SetItem(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockResponse(*item))
}

// UpdateDetails PUT /api/inventario/:sitio/:id: corrige descripción, talla y
// mínimo sin tocar los pools.
func (h *StockHandler) UpdateDetails(c *fiber.Ctx) error {
	site := c.Params("sitio")
	if err := authorizeSite(c, site); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateStockDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateDetails(c.Context(), id, site, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo actualizado"})
}

// Delete DELETE /api/inventario/:sitio/:id.
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	site := c.Params("sitio")
	if err := authorizeSite(c, site); err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id, site); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo eliminado"})
}

func toStockResponse(it entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:             it.ID,
		Code:           it.Code,
		Description:    it.Description,
		Size:           it.Size,
		StockNew:       it.StockNew,
		StockRecovered: it.StockRecovered,
		StockTotal:     it.Total(),
		StockMin:       it.StockMin,
		Site:           string(it.Site),
		Status:         it.Status,
	}
}
