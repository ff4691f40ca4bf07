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

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación de EntryRepository (usable con pool o tx).
type EntryRepo struct {
	q sqlx.ExtContext
	d Dialect
}

// NewEntryRepository construye el adaptador de entradas.
func NewEntryRepository(q sqlx.ExtContext, d Dialect) *EntryRepo {
	return &EntryRepo{q: q, d: d}
}

// Insert crea la cabecera y devuelve el ID generado (normalizado por dialecto).
func (r *EntryRepo) Insert(ctx context.Context, e *entity.Entry) (int64, error) {
	id, err := r.d.InsertReturningID(ctx, r.q,
		`INSERT INTO entries (date, site, total_items, created_by) VALUES (?, ?, ?, ?)`,
		e.Date, e.Site, e.TotalItems, e.CreatedBy)
	if err != nil {
		return 0, classifyErr(r.d, "insert entry", err)
	}
	return id, nil
}

// InsertItems inserta las líneas de la entrada.
func (r *EntryRepo) InsertItems(ctx context.Context, entryID int64, items []entity.EntryItem) error {
	query := r.d.Rebind(`INSERT INTO entry_items (entry_id, code, description, size, qty) VALUES (?, ?, ?, ?, ?)`)
	for _, it := range items {
		if _, err := r.q.ExecContext(ctx, query, entryID, it.Code, it.Description, it.Size, it.Qty); err != nil {
			return classifyErr(r.d, "insert entry item", err)
		}
	}
	return nil
}

// Get obtiene la cabecera de una entrada.
func (r *EntryRepo) Get(ctx context.Context, id int64) (*entity.Entry, error) {
	var e entity.Entry
	query := r.d.Rebind(`SELECT id, date, site, total_items, created_by, created_at, updated_at FROM entries WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyErr(r.d, "get entry", err)
	}
	return &e, nil
}

// ListItems devuelve las líneas de una entrada.
func (r *EntryRepo) ListItems(ctx context.Context, entryID int64) ([]entity.EntryItem, error) {
	var items []entity.EntryItem
	query := r.d.Rebind(`SELECT id, entry_id, code, description, size, qty FROM entry_items WHERE entry_id = ? ORDER BY id`)
	if err := sqlx.SelectContext(ctx, r.q, &items, query, entryID); err != nil {
		return nil, classifyErr(r.d, "list entry items", err)
	}
	return items, nil
}

// DeleteItems elimina las líneas de una entrada (paso previo de una corrección).
func (r *EntryRepo) DeleteItems(ctx context.Context, entryID int64) error {
	if _, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM entry_items WHERE entry_id = ?`), entryID); err != nil {
		return classifyErr(r.d, "delete entry items", err)
	}
	return nil
}

// UpdateHeader actualiza fecha, sitio y total de una entrada.
func (r *EntryRepo) UpdateHeader(ctx context.Context, e *entity.Entry) error {
	query := r.d.Rebind(`UPDATE entries SET date = ?, site = ?, total_items = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	if _, err := r.q.ExecContext(ctx, query, e.Date, e.Site, e.TotalItems, e.ID); err != nil {
		return classifyErr(r.d, "update entry", err)
	}
	return nil
}

// Delete elimina la cabecera.
func (r *EntryRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM entries WHERE id = ?`), id); err != nil {
		return classifyErr(r.d, "delete entry", err)
	}
	return nil
}

// List devuelve las entradas, opcionalmente filtradas por sitio, más recientes
// primero.
func (r *EntryRepo) List(ctx context.Context, site *domain.Site) ([]entity.Entry, error) {
	query := `SELECT id, date, site, total_items, created_by, created_at, updated_at FROM entries`
	args := []interface{}{}
	if site != nil {
		query += ` WHERE site = ?`
		args = append(args, *site)
	}
	query += ` ORDER BY date DESC, id DESC`

	var entries []entity.Entry
	if err := sqlx.SelectContext(ctx, r.q, &entries, r.d.Rebind(query), args...); err != nil {
		return nil, classifyErr(r.d, "list entries", err)
	}
	return entries, nil
}
