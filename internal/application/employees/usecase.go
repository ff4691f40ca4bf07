// Package employees alta y ciclo de vida de colaboradores: fechas de uniforme
// derivadas del ingreso, cola de pendientes de número de empleado y
// renovaciones semestrales.
package employees

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
)

// UseCase casos de uso de colaboradores.
type UseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso de colaboradores.
func NewUseCase(tx repository.TxRunner, repos repository.Repos, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, repos: repos, log: log}
}

// Create registra un colaborador. Sin número de empleado el registro entra a
// la cola de pendientes; con número se da de alta directamente como Activo.
// Las fechas de uniforme se derivan siempre de la fecha de ingreso.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (int64, bool, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return 0, false, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	}
	hire, err := time.Parse(dateLayout, strings.TrimSpace(in.HireDate))
	if err != nil {
		return 0, false, fmt.Errorf("%w: fecha de ingreso inválida %q", domain.ErrValidation, in.HireDate)
	}
	secondUniform := SecondUniformDate(hire).Format(dateLayout)
	nextRenewal := NextRenewalDate(hire).Format(dateLayout)

	if in.EmployeeID == nil || strings.TrimSpace(*in.EmployeeID) == "" {
		p := &entity.PendingEmployee{
			FullName:          strings.TrimSpace(in.FullName),
			Service:           strings.TrimSpace(in.Service),
			HireDate:          hire.Format(dateLayout),
			SecondUniformDate: secondUniform,
			NextRenewalDate:   nextRenewal,
			Status:            entity.PendingIDStatus,
		}
		var id int64
		err := uc.tx.Run(ctx, func(r repository.Repos) error {
			id, err = r.Employees.InsertPending(ctx, p)
			return err
		})
		if err != nil {
			return 0, false, err
		}
		uc.log.Info().Int64("pending_id", id).Str("name", p.FullName).Msg("colaborador en espera de número de empleado")
		return id, true, nil
	}

	num := strings.TrimSpace(*in.EmployeeID)
	e := &entity.Employee{
		EmployeeID:        &num,
		FullName:          strings.TrimSpace(in.FullName),
		Service:           strings.TrimSpace(in.Service),
		HireDate:          hire.Format(dateLayout),
		SecondUniformDate: secondUniform,
		NextRenewalDate:   nextRenewal,
		Status:            entity.EmployeeActive,
	}
	var id int64
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		id, err = r.Employees.Insert(ctx, e)
		return err
	})
	if err != nil {
		return 0, false, err
	}
	uc.log.Info().Int64("employee_id", id).Str("name", e.FullName).Msg("colaborador registrado")
	return id, false, nil
}

// ApprovePending convierte un registro pendiente en colaborador activo con el
// número asignado por RH; alta y baja del pendiente ocurren en la misma
// transacción.
func (uc *UseCase) ApprovePending(ctx context.Context, pendingID int64, in dto.ApprovePendingRequest) (int64, error) {
	num := strings.TrimSpace(in.EmployeeID)
	if num == "" {
		return 0, fmt.Errorf("%w: el número de empleado es obligatorio", domain.ErrValidation)
	}
	var id int64
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := r.Employees.GetPending(ctx, pendingID)
		if err != nil {
			return err
		}
		e := &entity.Employee{
			EmployeeID:        &num,
			FullName:          p.FullName,
			Service:           p.Service,
			HireDate:          p.HireDate,
			SecondUniformDate: p.SecondUniformDate,
			NextRenewalDate:   p.NextRenewalDate,
			Status:            entity.EmployeeActive,
		}
		id, err = r.Employees.Insert(ctx, e)
		if err != nil {
			return err
		}
		return r.Employees.DeletePending(ctx, pendingID)
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int64("employee_id", id).Str("employee_number", num).Msg("pendiente aprobado")
	return id, nil
}

// Renew registra una renovación de uniforme y recalcula la siguiente fecha
// seis meses adelante.
func (uc *UseCase) Renew(ctx context.Context, id int64, in dto.RenewEmployeeRequest) (*entity.Employee, error) {
	renewal, err := time.Parse(dateLayout, strings.TrimSpace(in.RenewalDate))
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de renovación inválida %q", domain.ErrValidation, in.RenewalDate)
	}
	var out *entity.Employee
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		e, err := r.Employees.Get(ctx, id)
		if err != nil {
			return err
		}
		last := renewal.Format(dateLayout)
		e.LastRenewalDate = &last
		e.NextRenewalDate = NextRenewalDate(renewal).Format(dateLayout)
		if err := r.Employees.Update(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("employee_id", id).Str("next_renewal", out.NextRenewalDate).Msg("renovación registrada")
	return out, nil
}

// SetStatus activa o inactiva un colaborador.
func (uc *UseCase) SetStatus(ctx context.Context, id int64, status string) error {
	if status != entity.EmployeeActive && status != entity.EmployeeInactive {
		return fmt.Errorf("%w: estado inválido %q", domain.ErrValidation, status)
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Employees.SetStatus(ctx, id, status)
	})
}

// List devuelve los colaboradores, opcionalmente filtrados por estado.
func (uc *UseCase) List(ctx context.Context, status string) ([]entity.Employee, error) {
	return uc.repos.Employees.List(ctx, status)
}

// ListPending devuelve los registros en espera de número de empleado.
func (uc *UseCase) ListPending(ctx context.Context) ([]entity.PendingEmployee, error) {
	return uc.repos.Employees.ListPending(ctx)
}
