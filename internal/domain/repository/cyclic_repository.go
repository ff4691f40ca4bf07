package repository

import (
	"context"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
)

// CyclicTaskFilter filtros opcionales del listado de tareas.
type CyclicTaskFilter struct {
	Status     string
	AssignedTo string
}

// CyclicTaskRepository persistencia de tareas de inventario cíclico.
type CyclicTaskRepository interface {
	Insert(ctx context.Context, t *entity.CyclicTask) (int64, error)
	InsertItems(ctx context.Context, taskID int64, items []entity.CyclicItem) error
	Get(ctx context.Context, id int64) (*entity.CyclicTask, error)
	List(ctx context.Context, f CyclicTaskFilter) ([]entity.CyclicTask, error)
	ListItems(ctx context.Context, taskID int64) ([]entity.CyclicItem, error)
	// RecordCount guarda el conteo físico y la diferencia firmada de una línea.
	RecordCount(ctx context.Context, taskID, itemID int64, physical, difference int) error
	// CountUncounted devuelve cuántas líneas siguen sin conteo físico.
	CountUncounted(ctx context.Context, taskID int64) (int, error)
	// Complete marca la tarea como Completado; transición de una sola vía.
	Complete(ctx context.Context, taskID int64, completedBy string) error
	Stats(ctx context.Context) (*entity.CyclicStats, error)
}
