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

var _ repository.DispatchRepository = (*DispatchRepo)(nil)

const dispatchColumns = `id, date, employee_id, employee_name, service, site, dispatch_type, status, total_items, created_by, approved_by, approved_at, created_at, updated_at`

// DispatchRepo implementación de DispatchRepository (usable con pool o tx).
type DispatchRepo struct {
	q sqlx.ExtContext
	d Dialect
}

// NewDispatchRepository construye el adaptador de salidas.
func NewDispatchRepository(q sqlx.ExtContext, d Dialect) *DispatchRepo {
	return &DispatchRepo{q: q, d: d}
}

// Insert crea la cabecera en estado Pendiente y devuelve el ID generado.
func (r *DispatchRepo) Insert(ctx context.Context, dsp *entity.Dispatch) (int64, error) {
	id, err := r.d.InsertReturningID(ctx, r.q,
		`INSERT INTO dispatches (date, employee_id, employee_name, service, site, dispatch_type, status, total_items, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dsp.Date, dsp.EmployeeID, dsp.EmployeeName, dsp.Service, dsp.Site,
		dsp.DispatchType, dsp.Status, dsp.TotalItems, dsp.CreatedBy)
	if err != nil {
		return 0, classifyErr(r.d, "insert dispatch", err)
	}
	return id, nil
}

// InsertItems inserta las líneas de la salida.
func (r *DispatchRepo) InsertItems(ctx context.Context, dispatchID int64, items []entity.DispatchItem) error {
	query := r.d.Rebind(`INSERT INTO dispatch_items (dispatch_id, code, description, size, qty) VALUES (?, ?, ?, ?, ?)`)
	for _, it := range items {
		if _, err := r.q.ExecContext(ctx, query, dispatchID, it.Code, it.Description, it.Size, it.Qty); err != nil {
			return classifyErr(r.d, "insert dispatch item", err)
		}
	}
	return nil
}

// Get obtiene la cabecera de una salida.
func (r *DispatchRepo) Get(ctx context.Context, id int64) (*entity.Dispatch, error) {
	var dsp entity.Dispatch
	query := r.d.Rebind(`SELECT ` + dispatchColumns + ` FROM dispatches WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &dsp, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyErr(r.d, "get dispatch", err)
	}
	return &dsp, nil
}

// ListItems devuelve las líneas de una salida.
func (r *DispatchRepo) ListItems(ctx context.Context, dispatchID int64) ([]entity.DispatchItem, error) {
	var items []entity.DispatchItem
	query := r.d.Rebind(`SELECT id, dispatch_id, code, description, size, qty FROM dispatch_items WHERE dispatch_id = ? ORDER BY id`)
	if err := sqlx.SelectContext(ctx, r.q, &items, query, dispatchID); err != nil {
		return nil, classifyErr(r.d, "list dispatch items", err)
	}
	return items, nil
}

// DeleteItems elimina las líneas (paso previo de una corrección).
func (r *DispatchRepo) DeleteItems(ctx context.Context, dispatchID int64) error {
	if _, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM dispatch_items WHERE dispatch_id = ?`), dispatchID); err != nil {
		return classifyErr(r.d, "delete dispatch items", err)
	}
	return nil
}

// UpdateHeader actualiza los datos de la cabecera (no el estado).
func (r *DispatchRepo) UpdateHeader(ctx context.Context, dsp *entity.Dispatch) error {
	query := r.d.Rebind(`
		UPDATE dispatches
		SET date = ?, employee_id = ?, employee_name = ?, service = ?, site = ?, dispatch_type = ?, total_items = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`)
	if _, err := r.q.ExecContext(ctx, query,
		dsp.Date, dsp.EmployeeID, dsp.EmployeeName, dsp.Service, dsp.Site, dsp.DispatchType, dsp.TotalItems, dsp.ID); err != nil {
		return classifyErr(r.d, "update dispatch", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado de la salida. El stock ya fue descontado
// al crearla; la aprobación no vuelve a tocar el ledger.
func (r *DispatchRepo) UpdateStatus(ctx context.Context, id int64, status, approvedBy string) error {
	query := r.d.Rebind(`
		UPDATE dispatches
		SET status = ?, approved_by = ?, approved_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`)
	if _, err := r.q.ExecContext(ctx, query, status, approvedBy, id); err != nil {
		return classifyErr(r.d, "update dispatch status", err)
	}
	return nil
}

// Delete elimina la cabecera.
func (r *DispatchRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM dispatches WHERE id = ?`), id); err != nil {
		return classifyErr(r.d, "delete dispatch", err)
	}
	return nil
}

// List devuelve las salidas, opcionalmente filtradas por sitio, más recientes
// primero.
func (r *DispatchRepo) List(ctx context.Context, site *domain.Site) ([]entity.Dispatch, error) {
	query := `SELECT ` + dispatchColumns + ` FROM dispatches`
	args := []interface{}{}
	if site != nil {
		query += ` WHERE site = ?`
		args = append(args, *site)
	}
	query += ` ORDER BY date DESC, id DESC`

	var dispatches []entity.Dispatch
	if err := sqlx.SelectContext(ctx, r.q, &dispatches, r.d.Rebind(query), args...); err != nil {
		return nil, classifyErr(r.d, "list dispatches", err)
	}
	return dispatches, nil
}
