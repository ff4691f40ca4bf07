package entity

import (
	"time"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
)

// Estados de una salida. Pendiente -> Aprobado es terminal; solo una salida
// Pendiente puede corregirse o eliminarse.
const (
	DispatchPending  = "Pendiente"
	DispatchApproved = "Aprobado"
)

// DispatchTypeNormal tipo de salida por defecto.
const DispatchTypeNormal = "Normal"

// Entry es una recepción de mercancía en un sitio (cabecera + líneas).
type Entry struct {
	ID         int64       `db:"id"`
	Date       string      `db:"date"`
	Site       domain.Site `db:"site"`
	TotalItems int         `db:"total_items"`
	CreatedBy  string      `db:"created_by"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`

	Items []EntryItem `db:"-"`
}

// EntryItem línea de una entrada.
type EntryItem struct {
	ID          int64   `db:"id"`
	EntryID     int64   `db:"entry_id"`
	Code        string  `db:"code"`
	Description string  `db:"description"`
	Size        *string `db:"size"`
	Qty         int     `db:"qty"`
}

// Dispatch es una salida de mercancía hacia un colaborador.
// El stock se descuenta al crearla, no al aprobarla; la aprobación es solo un
// cambio de estado.
type Dispatch struct {
	ID           int64       `db:"id"`
	Date         string      `db:"date"`
	EmployeeID   string      `db:"employee_id"`
	EmployeeName string      `db:"employee_name"`
	Service      string      `db:"service"`
	Site         domain.Site `db:"site"`
	DispatchType string      `db:"dispatch_type"`
	Status       string      `db:"status"`
	TotalItems   int         `db:"total_items"`
	CreatedBy    string      `db:"created_by"`
	ApprovedBy   *string     `db:"approved_by"`
	ApprovedAt   *time.Time  `db:"approved_at"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`

	Items []DispatchItem `db:"-"`
}

// DispatchItem línea de una salida.
type DispatchItem struct {
	ID          int64   `db:"id"`
	DispatchID  int64   `db:"dispatch_id"`
	Code        string  `db:"code"`
	Description string  `db:"description"`
	Size        *string `db:"size"`
	Qty         int     `db:"qty"`
}

// Recovery es el procesamiento de equipo devuelto. No tiene sitio propio: cada
// línea lleva su destino (un sitio o Desecho).
type Recovery struct {
	ID           int64     `db:"id"`
	Date         string    `db:"date"`
	EmployeeID   string    `db:"employee_id"`
	EmployeeName string    `db:"employee_name"`
	TotalItems   int       `db:"total_items"`
	CreatedBy    string    `db:"created_by"`
	CreatedAt    time.Time `db:"created_at"`

	Items []RecoveryItem `db:"-"`
}

// RecoveryItem línea de una recuperación con destino explícito.
type RecoveryItem struct {
	ID          int64              `db:"id"`
	RecoveryID  int64              `db:"recovery_id"`
	Code        string             `db:"code"`
	Description string             `db:"description"`
	Size        *string            `db:"size"`
	Qty         int                `db:"qty"`
	Destination domain.Destination `db:"destination"`
}

// HasRecovered indica si al menos una línea acredita stock en algún sitio.
// Es un dato derivado de las líneas, nunca almacenado por separado.
func (r *Recovery) HasRecovered() bool {
	for _, it := range r.Items {
		if !it.Destination.IsDiscard() {
			return true
		}
	}
	return false
}

// HasDiscard indica si al menos una línea fue a desecho.
func (r *Recovery) HasDiscard() bool {
	for _, it := range r.Items {
		if it.Destination.IsDiscard() {
			return true
		}
	}
	return false
}

// SumEntryQty recalcula el total de artículos de una entrada. El total nunca
// se toma del input.
func SumEntryQty(items []EntryItem) int {
	total := 0
	for _, it := range items {
		total += it.Qty
	}
	return total
}

// SumDispatchQty recalcula el total de artículos de una salida.
func SumDispatchQty(items []DispatchItem) int {
	total := 0
	for _, it := range items {
		total += it.Qty
	}
	return total
}

// SumRecoveryQty recalcula el total de artículos de una recuperación.
func SumRecoveryQty(items []RecoveryItem) int {
	total := 0
	for _, it := range items {
		total += it.Qty
	}
	return total
}
