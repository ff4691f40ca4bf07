package dto

// ── Entradas ──────────────────────────────────────────────────────────────────

// MovementLineRequest línea genérica de un movimiento (entrada o salida).
type MovementLineRequest struct {
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	Size        *string `json:"talla,omitempty"`
	Qty         int     `json:"cantidad"`
}

// CreateEntryRequest body para POST /api/entradas.
type CreateEntryRequest struct {
	Date  string                `json:"fecha"`
	Site  string                `json:"sitio"`
	Items []MovementLineRequest `json:"items"`
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// CreateDispatchRequest body para POST /api/salidas.
type CreateDispatchRequest struct {
	Date         string                `json:"fecha"`
	EmployeeID   string                `json:"numeroEmpleado"`
	EmployeeName string                `json:"nombreEmpleado"`
	Service      string                `json:"servicio"`
	Site         string                `json:"sitio"`
	DispatchType string                `json:"tipoSalida,omitempty"`
	Items        []MovementLineRequest `json:"items"`
}

// ── Recuperaciones ────────────────────────────────────────────────────────────

// RecoveryLineRequest línea de recuperación; cada línea lleva su destino
// (un sitio o "Desecho").
type RecoveryLineRequest struct {
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	Size        *string `json:"talla,omitempty"`
	Qty         int     `json:"cantidad"`
	Destination string  `json:"destino"`
}

// CreateRecoveryRequest body para POST /api/recuperaciones.
type CreateRecoveryRequest struct {
	Date         string                `json:"fecha"`
	EmployeeID   string                `json:"numeroEmpleado"`
	EmployeeName string                `json:"nombreEmpleado"`
	Items        []RecoveryLineRequest `json:"items"`
}

// MovementResponse respuesta de creación/corrección de un movimiento.
// Warnings lista los sobregiros tolerados (stock clampado en cero).
type MovementResponse struct {
	ID       int64    `json:"id"`
	Warnings []string `json:"advertencias,omitempty"`
}
