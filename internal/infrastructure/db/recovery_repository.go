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

var _ repository.RecoveryRepository = (*RecoveryRepo)(nil)

// RecoveryRepo implementación de RecoveryRepository (usable con pool o tx).
type RecoveryRepo struct {
	q sqlx.ExtContext
	d Dialect
}

// NewRecoveryRepository construye el adaptador de recuperaciones.
func NewRecoveryRepository(q sqlx.ExtContext, d Dialect) *RecoveryRepo {
	return &RecoveryRepo{q: q, d: d}
}

// Insert crea la cabecera y devuelve el ID generado.
func (r *RecoveryRepo) Insert(ctx context.Context, rec *entity.Recovery) (int64, error) {
	id, err := r.d.InsertReturningID(ctx, r.q,
		`INSERT INTO recoveries (date, employee_id, employee_name, total_items, created_by) VALUES (?, ?, ?, ?, ?)`,
		rec.Date, rec.EmployeeID, rec.EmployeeName, rec.TotalItems, rec.CreatedBy)
	if err != nil {
		return 0, classifyErr(r.d, "insert recovery", err)
	}
	return id, nil
}

// InsertItems inserta las líneas con su destino explícito.
func (r *RecoveryRepo) InsertItems(ctx context.Context, recoveryID int64, items []entity.RecoveryItem) error {
	query := r.d.Rebind(`INSERT INTO recovery_items (recovery_id, code, description, size, qty, destination) VALUES (?, ?, ?, ?, ?, ?)`)
	for _, it := range items {
		if _, err := r.q.ExecContext(ctx, query, recoveryID, it.Code, it.Description, it.Size, it.Qty, it.Destination); err != nil {
			return classifyErr(r.d, "insert recovery item", err)
		}
	}
	return nil
}

// Get obtiene la cabecera de una recuperación.
func (r *RecoveryRepo) Get(ctx context.Context, id int64) (*entity.Recovery, error) {
	var rec entity.Recovery
	query := r.d.Rebind(`SELECT id, date, employee_id, employee_name, total_items, created_by, created_at FROM recoveries WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyErr(r.d, "get recovery", err)
	}
	return &rec, nil
}

// ListItems devuelve las líneas de una recuperación.
func (r *RecoveryRepo) ListItems(ctx context.Context, recoveryID int64) ([]entity.RecoveryItem, error) {
	var items []entity.RecoveryItem
	query := r.d.Rebind(`SELECT id, recovery_id, code, description, size, qty, destination FROM recovery_items WHERE recovery_id = ? ORDER BY id`)
	if err := sqlx.SelectContext(ctx, r.q, &items, query, recoveryID); err != nil {
		return nil, classifyErr(r.d, "list recovery items", err)
	}
	return items, nil
}

// List devuelve las recuperaciones más recientes primero. Con site, solo las
// que tienen al menos una línea hacia ese sitio o hacia Desecho (lo que ve un
// usuario de almacén).
func (r *RecoveryRepo) List(ctx context.Context, site *domain.Site) ([]entity.Recovery, error) {
	query := `SELECT id, date, employee_id, employee_name, total_items, created_by, created_at FROM recoveries`
	args := []interface{}{}
	if site != nil {
		query += ` WHERE id IN (
			SELECT DISTINCT recovery_id FROM recovery_items
			WHERE destination = ? OR destination = ?)`
		args = append(args, *site, domain.DestDiscard)
	}
	query += ` ORDER BY date DESC, id DESC`

	var recoveries []entity.Recovery
	if err := sqlx.SelectContext(ctx, r.q, &recoveries, r.d.Rebind(query), args...); err != nil {
		return nil, classifyErr(r.d, "list recoveries", err)
	}
	return recoveries, nil
}
