package entity

import (
	"time"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
)

// Estados derivados del stock. Nunca se fijan de forma independiente: siempre
// se recalculan con DeriveStatus a partir de los pools y el mínimo.
const (
	StatusInStock    = "En Stock"
	StatusReorder    = "Reordenar"
	StatusOutOfStock = "Agotado"
)

// StockItem es el registro autoritativo de stock por (code, site).
// StockNew y StockRecovered nunca son negativos; toda mutación clampa en 0.
type StockItem struct {
	ID             int64       `db:"id"`
	Code           string      `db:"code"`
	Description    string      `db:"description"`
	Size           *string     `db:"size"`
	StockNew       int         `db:"stock_new"`
	StockRecovered int         `db:"stock_recovered"`
	StockMin       int         `db:"stock_min"`
	Site           domain.Site `db:"site"`
	Status         string      `db:"status"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

// Total devuelve el stock total disponible (nuevo + recuperado).
func (s *StockItem) Total() int { return s.StockNew + s.StockRecovered }

// Exists indica si el registro está persistido (los registros ausentes se
// materializan con pools en cero e ID cero).
func (s *StockItem) Exists() bool { return s.ID != 0 }

// Recompute recalcula el status derivado a partir del estado actual.
func (s *StockItem) Recompute() {
	s.Status = DeriveStatus(s.Total(), s.StockMin)
}

// DeriveStatus es la función pura de derivación de estado: Agotado con total
// cero, Reordenar cuando el total no supera el mínimo, En Stock en otro caso.
// Se aplica también en lectura para que registros históricos con umbral
// modificado queden consistentes.
func DeriveStatus(total, stockMin int) string {
	switch {
	case total == 0:
		return StatusOutOfStock
	case total <= stockMin:
		return StatusReorder
	default:
		return StatusInStock
	}
}

// Allocate aplica la regla de asignación nuevo-primero de una salida: descuenta
// primero del pool nuevo y el faltante del recuperado, clampando ambos en 0.
// shortage es la cantidad que no pudo cubrirse con stock disponible (sobregiro
// tolerado: se registra, no se rechaza).
func Allocate(stockNew, stockRecovered, qty int) (newAfter, recoveredAfter, shortage int) {
	fromNew := qty
	if fromNew > stockNew {
		fromNew = stockNew
	}
	remainder := qty - fromNew
	fromRecovered := remainder
	if fromRecovered > stockRecovered {
		fromRecovered = stockRecovered
	}
	return stockNew - fromNew, stockRecovered - fromRecovered, remainder - fromRecovered
}

// ClampSub resta b de a sin bajar de cero (reversiones de entradas y
// correcciones usan esta resta clampada).
func ClampSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
