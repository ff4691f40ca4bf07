package entity

import "time"

// Estados de una tarea de inventario cíclico. Pendiente -> Completado es una
// transición de una sola vía; la tarea queda inmutable al completarse.
const (
	TaskPending   = "Pendiente"
	TaskCompleted = "Completado"
)

// CyclicTask es una tarea de conteo físico asignada a un sitio. El snapshot de
// stock teórico se toma del ledger al crearla y no se actualiza después; el
// conteo nunca ajusta el ledger.
type CyclicTask struct {
	ID          int64      `db:"id"`
	Date        string     `db:"date"`
	AssignedTo  string     `db:"assigned_to"`
	Status      string     `db:"status"`
	CompletedBy *string    `db:"completed_by"`
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	Items []CyclicItem `db:"-"`
}

// CyclicItem artículo contado dentro de una tarea. Difference es firmada:
// físico - teórico.
type CyclicItem struct {
	ID               int64   `db:"id"`
	TaskID           int64   `db:"task_id"`
	Code             string  `db:"code"`
	Description      string  `db:"description"`
	Size             *string `db:"size"`
	TheoreticalStock int     `db:"theoretical_stock"`
	PhysicalCount    *int    `db:"physical_count"`
	Difference       *int    `db:"difference"`
}

// Counted indica si la línea ya tiene conteo físico registrado.
func (c *CyclicItem) Counted() bool { return c.PhysicalCount != nil }

// CyclicStats estadísticas agregadas de tareas de conteo.
type CyclicStats struct {
	TotalTasks            int `db:"total_tasks"`
	PendingTasks          int `db:"pending_tasks"`
	CompletedTasks        int `db:"completed_tasks"`
	TodayPending          int `db:"today_pending"`
	TasksWithDifferences  int `db:"tasks_with_differences"`
}
