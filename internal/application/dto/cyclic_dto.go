package dto

// CyclicLineRequest artículo a incluir en una tarea de conteo. El stock teórico
// nunca viene del cliente: se toma del ledger al crear la tarea.
type CyclicLineRequest struct {
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	Size        *string `json:"talla,omitempty"`
}

// CreateCyclicTaskRequest body para POST /api/inventario-ciclico.
type CreateCyclicTaskRequest struct {
	Date       string              `json:"fecha"`
	Site       string              `json:"sitio"`
	AssignedTo string              `json:"asignadoA"`
	Items      []CyclicLineRequest `json:"items"`
}

// RecordCountRequest body para PUT /api/inventario-ciclico/:id/conteo.
type RecordCountRequest struct {
	ItemID        int64 `json:"itemId"`
	PhysicalCount int   `json:"conteoFisico"`
}

// CompleteCyclicTaskRequest body para PUT /api/inventario-ciclico/:id/completar.
// Counts permite enviar los conteos restantes en el mismo request.
type CompleteCyclicTaskRequest struct {
	Counts []RecordCountRequest `json:"conteos,omitempty"`
}
