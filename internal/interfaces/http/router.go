package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/auth"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/cyclic"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/employees"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/movement"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/orders"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/stock"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	StockUC    *stock.UseCase
	EntryUC    *movement.EntryUseCase
	DispatchUC *movement.DispatchUseCase
	RecoveryUC *movement.RecoveryUseCase
	CyclicUC   *cyclic.UseCase
	OrderUC    *orders.UseCase
	EmployeeUC *employees.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario por sitio
	stockHandler := NewStockHandler(deps.StockUC)
	inventario := protected.Group("/inventario")
	inventario.Post("/", stockHandler.Set)
	inventario.Get("/:sitio", stockHandler.List)
	inventario.Put("/:sitio/:id", stockHandler.UpdateDetails)
	inventario.Delete("/:sitio/:id", stockHandler.Delete)

	// Entradas
	entryHandler := NewEntryHandler(deps.EntryUC)
	entradas := protected.Group("/entradas")
	entradas.Get("/", entryHandler.List)
	entradas.Post("/", entryHandler.Create)
	entradas.Get("/:id", entryHandler.Get)
	entradas.Put("/:id", entryHandler.Update)
	entradas.Delete("/:id", entryHandler.Delete)

	// Salidas; la aprobación es exclusiva de Admin
	dispatchHandler := NewDispatchHandler(deps.DispatchUC)
	salidas := protected.Group("/salidas")
	salidas.Get("/", dispatchHandler.List)
	salidas.Post("/", dispatchHandler.Create)
	salidas.Get("/:id", dispatchHandler.Get)
	salidas.Put("/:id", dispatchHandler.Update)
	salidas.Delete("/:id", dispatchHandler.Delete)
	salidas.Put("/:id/aprobar", RequireRole(entity.RoleAdmin), dispatchHandler.Approve)

	// Recuperaciones (sin corrección: el registro es definitivo)
	recoveryHandler := NewRecoveryHandler(deps.RecoveryUC)
	recuperaciones := protected.Group("/recuperaciones")
	recuperaciones.Get("/", recoveryHandler.List)
	recuperaciones.Post("/", recoveryHandler.Create)
	recuperaciones.Get("/:id", recoveryHandler.Get)

	// Inventario cíclico; solo Admin programa tareas
	cyclicHandler := NewCyclicHandler(deps.CyclicUC)
	ciclico := protected.Group("/inventario-ciclico")
	ciclico.Get("/", cyclicHandler.List)
	ciclico.Post("/", RequireRole(entity.RoleAdmin), cyclicHandler.Create)
	ciclico.Get("/estadisticas", cyclicHandler.Stats)
	ciclico.Get("/:id", cyclicHandler.Get)
	ciclico.Put("/:id/conteo", cyclicHandler.RecordCount)
	ciclico.Put("/:id/completar", cyclicHandler.Complete)

	// Pedidos a proveedor
	orderHandler := NewOrderHandler(deps.OrderUC)
	pedidos := protected.Group("/pedidos")
	pedidos.Get("/", orderHandler.List)
	pedidos.Post("/", orderHandler.Create)
	pedidos.Get("/sugerencias", orderHandler.Suggestions)

	// Colaboradores
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	empleados := protected.Group("/empleados")
	empleados.Get("/", employeeHandler.List)
	empleados.Post("/", employeeHandler.Create)
	empleados.Get("/pendientes", employeeHandler.ListPending)
	empleados.Post("/pendientes/:id/aprobar", RequireRole(entity.RoleAdmin), employeeHandler.ApprovePending)
	empleados.Put("/:id/renovacion", employeeHandler.Renew)
	empleados.Put("/:id/estado", employeeHandler.SetStatus)
}
