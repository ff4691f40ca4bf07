package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/cyclic"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
)

// CyclicHandler maneja las tareas de inventario cíclico (protegido).
type CyclicHandler struct {
	uc *cyclic.UseCase
}

// NewCyclicHandler construye el handler.
func NewCyclicHandler(uc *cyclic.UseCase) *CyclicHandler {
	return &CyclicHandler{uc: uc}
}

// List GET /api/inventario-ciclico?estado=&asignado=.
func (h *CyclicHandler) List(c *fiber.Ctx) error {
	tasks, err := h.uc.List(c.Context(), repository.CyclicTaskFilter{
		Status:     c.Query("estado"),
		AssignedTo: c.Query("asignado"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

// Get GET /api/inventario-ciclico/:id.
func (h *CyclicHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	task, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// Create POST /api/inventario-ciclico: toma el snapshot teórico al crear.
func (h *CyclicHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCyclicTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := authorizeSite(c, in.Site); err != nil {
		return respondError(c, err)
	}
	task, err := h.uc.CreateTask(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// RecordCount PUT /api/inventario-ciclico/:id/conteo.
func (h *CyclicHandler) RecordCount(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RecordCount(c.Context(), id, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "conteo registrado"})
}

// Complete PUT /api/inventario-ciclico/:id/completar.
func (h *CyclicHandler) Complete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CompleteCyclicTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CompleteTask(c.Context(), id, GetName(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "tarea completada"})
}

// Stats GET /api/inventario-ciclico/estadisticas.
func (h *CyclicHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
