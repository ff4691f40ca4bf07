package dto

import "github.com/shopspring/decimal"

// OrderLineRequest línea de pedido a proveedor.
type OrderLineRequest struct {
	Code        string          `json:"codigo"`
	Description string          `json:"descripcion"`
	Size        *string         `json:"talla,omitempty"`
	Qty         int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precioUnitario"`
}

// CreateOrderRequest body para POST /api/pedidos. El folio PED-NNNN y el
// importe total se calculan en el servidor.
type CreateOrderRequest struct {
	Date     string             `json:"fecha"`
	Supplier *string            `json:"proveedor,omitempty"`
	Items    []OrderLineRequest `json:"items"`
}
