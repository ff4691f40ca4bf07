package dto

// SetStockRequest body para POST /api/inventario: fija los pools de un artículo
// de forma manual (alta o ajuste directo). El status nunca viene en el request,
// siempre se deriva.
type SetStockRequest struct {
	Code           string  `json:"codigo"`
	Description    string  `json:"descripcion"`
	Size           *string `json:"talla,omitempty"`
	StockNew       int     `json:"stockNuevo"`
	StockRecovered int     `json:"stockRecuperado"`
	StockMin       int     `json:"stockMinimo"`
	Site           string  `json:"sitio"`
}

// UpdateStockDetailsRequest body para PUT /api/inventario/:id: corrige datos
// descriptivos y umbral sin tocar los pools.
type UpdateStockDetailsRequest struct {
	Description string  `json:"descripcion"`
	Size        *string `json:"talla,omitempty"`
	StockMin    int     `json:"stockMinimo"`
}

// StockItemResponse artículo del ledger en respuestas.
type StockItemResponse struct {
	ID             int64   `json:"id"`
	Code           string  `json:"codigo"`
	Description    string  `json:"descripcion"`
	Size           *string `json:"talla,omitempty"`
	StockNew       int     `json:"stockNuevo"`
	StockRecovered int     `json:"stockRecuperado"`
	StockTotal     int     `json:"stockTotal"`
	StockMin       int     `json:"stockMinimo"`
	Site           string  `json:"sitio"`
	Status         string  `json:"estado"`
}
