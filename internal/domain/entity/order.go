package entity

import (
	"time"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderPending estado inicial de un pedido a proveedor.
const OrderPending = "Pendiente"

// Order pedido de reposición a proveedor generado desde las sugerencias de
// stock bajo.
type Order struct {
	ID          int64           `db:"id"`
	OrderNumber string          `db:"order_number"`
	Date        string          `db:"date"`
	Supplier    *string         `db:"supplier"`
	Status      string          `db:"status"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	CreatedBy   string          `db:"created_by"`
	CreatedAt   time.Time       `db:"created_at"`

	Items []OrderItem `db:"-"`
}

// OrderItem línea de pedido.
type OrderItem struct {
	ID          int64           `db:"id"`
	OrderID     int64           `db:"order_id"`
	Code        string          `db:"code"`
	Description string          `db:"description"`
	Size        *string         `db:"size"`
	Qty         int             `db:"qty"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}

// Suggestion artículo por debajo del mínimo con la cantidad sugerida de pedido.
type Suggestion struct {
	Code           string      `db:"code"`
	Description    string      `db:"description"`
	Size           *string     `db:"size"`
	StockNew       int         `db:"stock_new"`
	StockRecovered int         `db:"stock_recovered"`
	StockMin       int         `db:"stock_min"`
	Site           domain.Site `db:"site"`
	TotalStock     int         `db:"total_stock"`
	SuggestedQty   int         `db:"suggested_qty"`
}

// SumOrderAmount recalcula el importe total del pedido a partir de las líneas.
func SumOrderAmount(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total
}
