package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/employees"
)

// EmployeeHandler maneja colaboradores y pendientes de número (protegido).
type EmployeeHandler struct {
	uc *employees.UseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *employees.UseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List GET /api/empleados?estado=.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("estado"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/empleados.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, pending, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "pendiente": pending})
}

// Renew PUT /api/empleados/:id/renovacion.
func (h *EmployeeHandler) Renew(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.RenewEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	e, err := h.uc.Renew(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(e)
}

// SetStatus PUT /api/empleados/:id/estado.
func (h *EmployeeHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in struct {
		Status string `json:"estado"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetStatus(c.Context(), id, in.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// ListPending GET /api/empleados/pendientes.
func (h *EmployeeHandler) ListPending(c *fiber.Ctx) error {
	list, err := h.uc.ListPending(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ApprovePending POST /api/empleados/pendientes/:id/aprobar.
func (h *EmployeeHandler) ApprovePending(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ApprovePendingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	employeeID, err := h.uc.ApprovePending(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": employeeID})
}
