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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, employee_id, full_name, service, hire_date, last_renewal_date, second_uniform_date, next_renewal_date, status, created_at, updated_at`

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
type EmployeeRepo struct {
	q sqlx.ExtContext
	d Dialect
}

// NewEmployeeRepository construye el adaptador de colaboradores.
func NewEmployeeRepository(q sqlx.ExtContext, d Dialect) *EmployeeRepo {
	return &EmployeeRepo{q: q, d: d}
}

// List devuelve los colaboradores, opcionalmente filtrados por estado,
// ordenados por nombre.
func (r *EmployeeRepo) List(ctx context.Context, status string) ([]entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	args := []interface{}{}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY full_name`

	var employees []entity.Employee
	if err := sqlx.SelectContext(ctx, r.q, &employees, r.d.Rebind(query), args...); err != nil {
		return nil, classifyErr(r.d, "list employees", err)
	}
	return employees, nil
}

// Get obtiene un colaborador por ID.
func (r *EmployeeRepo) Get(ctx context.Context, id int64) (*entity.Employee, error) {
	var e entity.Employee
	query := r.d.Rebind(`SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyErr(r.d, "get employee", err)
	}
	return &e, nil
}

// Insert crea un colaborador y devuelve el ID generado.
func (r *EmployeeRepo) Insert(ctx context.Context, e *entity.Employee) (int64, error) {
	id, err := r.d.InsertReturningID(ctx, r.q,
		`INSERT INTO employees (employee_id, full_name, service, hire_date, last_renewal_date, second_uniform_date, next_renewal_date, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EmployeeID, e.FullName, e.Service, e.HireDate, e.LastRenewalDate,
		e.SecondUniformDate, e.NextRenewalDate, e.Status)
	if err != nil {
		return 0, classifyErr(r.d, "insert employee", err)
	}
	return id, nil
}

// Update actualiza los datos de un colaborador.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := r.d.Rebind(`
		UPDATE employees
		SET employee_id = ?, full_name = ?, service = ?, hire_date = ?, last_renewal_date = ?,
			second_uniform_date = ?, next_renewal_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`)
	res, err := r.q.ExecContext(ctx, query,
		e.EmployeeID, e.FullName, e.Service, e.HireDate, e.LastRenewalDate,
		e.SecondUniformDate, e.NextRenewalDate, e.ID)
	if err != nil {
		return classifyErr(r.d, "update employee", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus activa o inactiva un colaborador.
func (r *EmployeeRepo) SetStatus(ctx context.Context, id int64, status string) error {
	query := r.d.Rebind(`UPDATE employees SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	res, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return classifyErr(r.d, "set employee status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPending devuelve los registros en espera de número de empleado.
func (r *EmployeeRepo) ListPending(ctx context.Context) ([]entity.PendingEmployee, error) {
	var pending []entity.PendingEmployee
	query := `SELECT id, full_name, service, hire_date, second_uniform_date, next_renewal_date, status, created_at
		FROM pending_employees ORDER BY created_at DESC`
	if err := sqlx.SelectContext(ctx, r.q, &pending, query); err != nil {
		return nil, classifyErr(r.d, "list pending employees", err)
	}
	return pending, nil
}

// InsertPending crea un registro pendiente.
func (r *EmployeeRepo) InsertPending(ctx context.Context, p *entity.PendingEmployee) (int64, error) {
	id, err := r.d.InsertReturningID(ctx, r.q,
		`INSERT INTO pending_employees (full_name, service, hire_date, second_uniform_date, next_renewal_date, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.FullName, p.Service, p.HireDate, p.SecondUniformDate, p.NextRenewalDate, p.Status)
	if err != nil {
		return 0, classifyErr(r.d, "insert pending employee", err)
	}
	return id, nil
}

// GetPending obtiene un registro pendiente por ID.
func (r *EmployeeRepo) GetPending(ctx context.Context, id int64) (*entity.PendingEmployee, error) {
	var p entity.PendingEmployee
	query := r.d.Rebind(`SELECT id, full_name, service, hire_date, second_uniform_date, next_renewal_date, status, created_at
		FROM pending_employees WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyErr(r.d, "get pending employee", err)
	}
	return &p, nil
}

// DeletePending elimina un registro pendiente (tras aprobarlo).
func (r *EmployeeRepo) DeletePending(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM pending_employees WHERE id = ?`), id); err != nil {
		return classifyErr(r.d, "delete pending employee", err)
	}
	return nil
}
