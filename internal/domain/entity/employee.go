package entity

import "time"

// Estados de un colaborador.
const (
	EmployeeActive   = "Activo"
	EmployeeInactive = "Inactivo"
)

// PendingIDStatus estado de un registro en espera de número de empleado.
const PendingIDStatus = "Pendiente ID"

// Employee colaborador que recibe equipo mediante salidas.
type Employee struct {
	ID                int64     `db:"id"`
	EmployeeID        *string   `db:"employee_id"`
	FullName          string    `db:"full_name"`
	Service           string    `db:"service"`
	HireDate          string    `db:"hire_date"`
	LastRenewalDate   *string   `db:"last_renewal_date"`
	SecondUniformDate string    `db:"second_uniform_date"`
	NextRenewalDate   string    `db:"next_renewal_date"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// PendingEmployee registro de alta en espera de que RH asigne el número de
// empleado; al aprobarse se convierte en Employee dentro de una transacción.
type PendingEmployee struct {
	ID                int64     `db:"id"`
	FullName          string    `db:"full_name"`
	Service           string    `db:"service"`
	HireDate          string    `db:"hire_date"`
	SecondUniformDate string    `db:"second_uniform_date"`
	NextRenewalDate   string    `db:"next_renewal_date"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
}
