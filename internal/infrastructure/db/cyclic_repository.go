package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
)

var _ repository.CyclicTaskRepository = (*CyclicTaskRepo)(nil)

const cyclicTaskColumns = `id, date, assigned_to, status, completed_by, completed_at, created_at, updated_at`

// CyclicTaskRepo implementación de CyclicTaskRepository (usable con pool o tx).
type CyclicTaskRepo struct {
	q sqlx.ExtContext
	d Dialect
}

// NewCyclicTaskRepository construye el adaptador de tareas de conteo cíclico.
func NewCyclicTaskRepository(q sqlx.ExtContext, d Dialect) *CyclicTaskRepo {
	return &CyclicTaskRepo{q: q, d: d}
}

// Insert crea la tarea y devuelve el ID generado.
func (r *CyclicTaskRepo) Insert(ctx context.Context, t *entity.CyclicTask) (int64, error) {
	id, err := r.d.InsertReturningID(ctx, r.q,
		`INSERT INTO cyclic_inventory_tasks (date, assigned_to, status) VALUES (?, ?, ?)`,
		t.Date, t.AssignedTo, t.Status)
	if err != nil {
		return 0, classifyErr(r.d, "insert cyclic task", err)
	}
	return id, nil
}

// InsertItems inserta las líneas con su snapshot de stock teórico.
func (r *CyclicTaskRepo) InsertItems(ctx context.Context, taskID int64, items []entity.CyclicItem) error {
	query := r.d.Rebind(`
		INSERT INTO cyclic_inventory_items (task_id, code, description, size, theoretical_stock)
		VALUES (?, ?, ?, ?, ?)`)
	for _, it := range items {
		if _, err := r.q.ExecContext(ctx, query, taskID, it.Code, it.Description, it.Size, it.TheoreticalStock); err != nil {
			return classifyErr(r.d, "insert cyclic item", err)
		}
	}
	return nil
}

// Get obtiene una tarea por ID.
func (r *CyclicTaskRepo) Get(ctx context.Context, id int64) (*entity.CyclicTask, error) {
	var t entity.CyclicTask
	query := r.d.Rebind(`SELECT ` + cyclicTaskColumns + ` FROM cyclic_inventory_tasks WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyErr(r.d, "get cyclic task", err)
	}
	return &t, nil
}

// List devuelve las tareas filtradas por estado y/o asignación.
func (r *CyclicTaskRepo) List(ctx context.Context, f repository.CyclicTaskFilter) ([]entity.CyclicTask, error) {
	query := `SELECT ` + cyclicTaskColumns + ` FROM cyclic_inventory_tasks WHERE 1=1`
	args := []interface{}{}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.AssignedTo != "" {
		query += ` AND assigned_to = ?`
		args = append(args, f.AssignedTo)
	}
	query += ` ORDER BY date DESC`

	var tasks []entity.CyclicTask
	if err := sqlx.SelectContext(ctx, r.q, &tasks, r.d.Rebind(query), args...); err != nil {
		return nil, classifyErr(r.d, "list cyclic tasks", err)
	}
	return tasks, nil
}

// ListItems devuelve las líneas de una tarea.
func (r *CyclicTaskRepo) ListItems(ctx context.Context, taskID int64) ([]entity.CyclicItem, error) {
	var items []entity.CyclicItem
	query := r.d.Rebind(`
		SELECT id, task_id, code, description, size, theoretical_stock, physical_count, difference
		FROM cyclic_inventory_items WHERE task_id = ? ORDER BY id`)
	if err := sqlx.SelectContext(ctx, r.q, &items, query, taskID); err != nil {
		return nil, classifyErr(r.d, "list cyclic items", err)
	}
	return items, nil
}

// RecordCount guarda el conteo físico y la diferencia firmada de una línea.
func (r *CyclicTaskRepo) RecordCount(ctx context.Context, taskID, itemID int64, physical, difference int) error {
	query := r.d.Rebind(`
		UPDATE cyclic_inventory_items SET physical_count = ?, difference = ?
		WHERE id = ? AND task_id = ?`)
	res, err := r.q.ExecContext(ctx, query, physical, difference, itemID, taskID)
	if err != nil {
		return classifyErr(r.d, "record cyclic count", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountUncounted devuelve cuántas líneas siguen sin conteo físico.
func (r *CyclicTaskRepo) CountUncounted(ctx context.Context, taskID int64) (int, error) {
	var n int
	query := r.d.Rebind(`SELECT COUNT(*) FROM cyclic_inventory_items WHERE task_id = ? AND physical_count IS NULL`)
	if err := sqlx.GetContext(ctx, r.q, &n, query, taskID); err != nil {
		return 0, classifyErr(r.d, "count uncounted", err)
	}
	return n, nil
}

// Complete marca la tarea como Completado. Transición de una sola vía.
func (r *CyclicTaskRepo) Complete(ctx context.Context, taskID int64, completedBy string) error {
	query := r.d.Rebind(`
		UPDATE cyclic_inventory_tasks
		SET status = ?, completed_by = ?, completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`)
	if _, err := r.q.ExecContext(ctx, query, entity.TaskCompleted, completedBy, taskID); err != nil {
		return classifyErr(r.d, "complete cyclic task", err)
	}
	return nil
}

// Stats devuelve los agregados de tareas de conteo. CURRENT_DATE es válido en
// ambos dialectos.
func (r *CyclicTaskRepo) Stats(ctx context.Context) (*entity.CyclicStats, error) {
	var stats entity.CyclicStats
	query := `
		SELECT
			COUNT(*) AS total_tasks,
			COALESCE(SUM(CASE WHEN status = 'Pendiente' THEN 1 ELSE 0 END), 0) AS pending_tasks,
			COALESCE(SUM(CASE WHEN status = 'Completado' THEN 1 ELSE 0 END), 0) AS completed_tasks,
			COALESCE(SUM(CASE WHEN date = CURRENT_DATE AND status = 'Pendiente' THEN 1 ELSE 0 END), 0) AS today_pending
		FROM cyclic_inventory_tasks`
	if err := sqlx.GetContext(ctx, r.q, &stats, query); err != nil {
		return nil, classifyErr(r.d, "cyclic stats", err)
	}
	diffQuery := `
		SELECT COUNT(DISTINCT task_id)
		FROM cyclic_inventory_items
		WHERE difference IS NOT NULL AND difference != 0`
	if err := sqlx.GetContext(ctx, r.q, &stats.TasksWithDifferences, diffQuery); err != nil {
		return nil, classifyErr(r.d, "cyclic stats differences", err)
	}
	return &stats, nil
}
