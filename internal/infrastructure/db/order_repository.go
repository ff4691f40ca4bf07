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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q sqlx.ExtContext
	d Dialect
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q sqlx.ExtContext, d Dialect) *OrderRepo {
	return &OrderRepo{q: q, d: d}
}

// LastID devuelve el último ID de pedido (0 si no hay ninguno).
func (r *OrderRepo) LastID(ctx context.Context) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, r.q, &id, `SELECT id FROM orders ORDER BY id DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, classifyErr(r.d, "last order id", err)
	}
	return id, nil
}

// Insert crea la cabecera del pedido y devuelve el ID generado.
func (r *OrderRepo) Insert(ctx context.Context, o *entity.Order) (int64, error) {
	id, err := r.d.InsertReturningID(ctx, r.q,
		`INSERT INTO orders (order_number, date, supplier, status, total_amount, created_by) VALUES (?, ?, ?, ?, ?, ?)`,
		o.OrderNumber, o.Date, o.Supplier, o.Status, o.TotalAmount, o.CreatedBy)
	if err != nil {
		return 0, classifyErr(r.d, "insert order", err)
	}
	return id, nil
}

// InsertItems inserta las líneas del pedido.
func (r *OrderRepo) InsertItems(ctx context.Context, orderID int64, items []entity.OrderItem) error {
	query := r.d.Rebind(`INSERT INTO order_items (order_id, code, description, size, qty, unit_price) VALUES (?, ?, ?, ?, ?, ?)`)
	for _, it := range items {
		if _, err := r.q.ExecContext(ctx, query, orderID, it.Code, it.Description, it.Size, it.Qty, it.UnitPrice); err != nil {
			return classifyErr(r.d, "insert order item", err)
		}
	}
	return nil
}

// List devuelve los pedidos más recientes primero.
func (r *OrderRepo) List(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	query := `SELECT id, order_number, date, supplier, status, total_amount, created_by, created_at FROM orders ORDER BY date DESC, id DESC`
	if err := sqlx.SelectContext(ctx, r.q, &orders, query); err != nil {
		return nil, classifyErr(r.d, "list orders", err)
	}
	return orders, nil
}

// ListItems devuelve las líneas de un pedido.
func (r *OrderRepo) ListItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	query := r.d.Rebind(`SELECT id, order_id, code, description, size, qty, unit_price FROM order_items WHERE order_id = ? ORDER BY id`)
	if err := sqlx.SelectContext(ctx, r.q, &items, query, orderID); err != nil {
		return nil, classifyErr(r.d, "list order items", err)
	}
	return items, nil
}

// Suggestions artículos con stock total por debajo del mínimo y la cantidad
// sugerida de pedido, ordenados por déficit.
func (r *OrderRepo) Suggestions(ctx context.Context, site *domain.Site) ([]entity.Suggestion, error) {
	query := `
		SELECT
			code, description, size, stock_new, stock_recovered, stock_min, site,
			(stock_new + stock_recovered) AS total_stock,
			GREATEST(0, stock_min - (stock_new + stock_recovered)) AS suggested_qty
		FROM inventory_items
		WHERE (stock_new + stock_recovered) < stock_min`
	args := []interface{}{}
	if site != nil {
		query += ` AND site = ?`
		args = append(args, *site)
	}
	query += ` ORDER BY site, (stock_min - (stock_new + stock_recovered)) DESC`

	var suggestions []entity.Suggestion
	if err := sqlx.SelectContext(ctx, r.q, &suggestions, r.d.Rebind(query), args...); err != nil {
		return nil, classifyErr(r.d, "order suggestions", err)
	}
	return suggestions, nil
}
