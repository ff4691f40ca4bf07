package dto

// CreateEmployeeRequest body para POST /api/empleados. Si EmployeeID viene
// vacío el registro entra a la cola de pendientes hasta que RH asigne número.
type CreateEmployeeRequest struct {
	EmployeeID *string `json:"numeroEmpleado,omitempty"`
	FullName   string  `json:"nombreCompleto"`
	Service    string  `json:"servicio"`
	HireDate   string  `json:"fechaIngreso"`
}

// ApprovePendingRequest body para POST /api/empleados/pendientes/:id/aprobar.
type ApprovePendingRequest struct {
	EmployeeID string `json:"numeroEmpleado"`
}

// RenewEmployeeRequest body para PUT /api/empleados/:id/renovacion.
type RenewEmployeeRequest struct {
	RenewalDate string `json:"fechaRenovacion"`
}
