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

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, code, description, size, stock_new, stock_recovered, stock_min, site, status, created_at, updated_at`

// StockRepo implementación de StockRepository sobre el dialecto activo
// (usable con pool o tx).
type StockRepo struct {
	q sqlx.ExtContext
	d Dialect
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx.
func NewStockRepository(q sqlx.ExtContext, d Dialect) *StockRepo {
	return &StockRepo{q: q, d: d}
}

// Get obtiene el registro de stock de un artículo en un sitio. Si no existe
// devuelve un registro con pools en cero e ID cero.
func (r *StockRepo) Get(ctx context.Context, code string, site domain.Site) (*entity.StockItem, error) {
	return r.get(ctx, code, site, false)
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT ... FOR UPDATE)
// para la secuencia leer-modificar-escribir dentro de la transacción activa.
func (r *StockRepo) GetForUpdate(ctx context.Context, code string, site domain.Site) (*entity.StockItem, error) {
	return r.get(ctx, code, site, true)
}

func (r *StockRepo) get(ctx context.Context, code string, site domain.Site, forUpdate bool) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory_items WHERE code = ? AND site = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var item entity.StockItem
	err := sqlx.GetContext(ctx, r.q, &item, r.d.Rebind(query), code, site)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entity.StockItem{Code: code, Site: site, Status: entity.StatusOutOfStock}, nil
		}
		return nil, classifyErr(r.d, "get stock", err)
	}
	return &item, nil
}

// Increment upsert aditivo de un solo round trip: crea el registro si no
// existe y suma los deltas a los pools (clampados en 0), recalculando el
// status en la misma sentencia. La semántica aditiva es idéntica en ambos
// dialectos.
func (r *StockRepo) Increment(ctx context.Context, code, description string, size *string, site domain.Site, newDelta, recoveredDelta int) error {
	status := entity.DeriveStatus(newDelta+recoveredDelta, 0)
	_, err := r.q.ExecContext(ctx, r.d.Rebind(r.d.UpsertStockIncrement()),
		code, description, size, newDelta, recoveredDelta, site, status)
	if err != nil {
		return classifyErr(r.d, "increment stock", err)
	}
	return nil
}

// Save upsert de valores completos. Solo debe llamarse con la fila bloqueada
// por GetForUpdate en la misma transacción; nunca con valores calculados fuera
// de ella.
func (r *StockRepo) Save(ctx context.Context, item *entity.StockItem) error {
	item.Recompute()
	_, err := r.q.ExecContext(ctx, r.d.Rebind(r.d.UpsertStockSave()),
		item.Code, item.Description, item.Size,
		item.StockNew, item.StockRecovered, item.StockMin,
		item.Site, item.Status)
	if err != nil {
		return classifyErr(r.d, "save stock", err)
	}
	return nil
}

// ListBySite devuelve el inventario de un sitio ordenado por código. El status
// se rederiva en lectura para que umbrales modificados no dejen estados
// obsoletos.
func (r *StockRepo) ListBySite(ctx context.Context, site domain.Site) ([]entity.StockItem, error) {
	query := r.d.Rebind(`SELECT ` + stockColumns + ` FROM inventory_items WHERE site = ? ORDER BY code`)
	var items []entity.StockItem
	if err := sqlx.SelectContext(ctx, r.q, &items, query, site); err != nil {
		return nil, classifyErr(r.d, "list stock", err)
	}
	for i := range items {
		items[i].Recompute()
	}
	return items, nil
}

// UpdateDetails actualiza descripción, talla y mínimo de un artículo, y deja
// el status consistente con el nuevo umbral.
func (r *StockRepo) UpdateDetails(ctx context.Context, id int64, site domain.Site, description string, size *string, stockMin int) error {
	query := r.d.Rebind(`
		UPDATE inventory_items
		SET description = ?, size = ?, stock_min = ?,
			status = CASE
				WHEN stock_new + stock_recovered = 0 THEN 'Agotado'
				WHEN stock_new + stock_recovered <= ? THEN 'Reordenar'
				ELSE 'En Stock'
			END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND site = ?`)
	res, err := r.q.ExecContext(ctx, query, description, size, stockMin, stockMin, id, site)
	if err != nil {
		return classifyErr(r.d, "update stock details", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un artículo del inventario (baja explícita, independiente del
// procesamiento de movimientos).
func (r *StockRepo) Delete(ctx context.Context, id int64, site domain.Site) error {
	res, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM inventory_items WHERE id = ? AND site = ?`), id, site)
	if err != nil {
		return classifyErr(r.d, "delete stock", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
