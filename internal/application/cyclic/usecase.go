// Package cyclic implementa el conteo cíclico de inventario: tareas de conteo
// físico contra un snapshot teórico del ledger. El conteo documenta
// discrepancias; nunca ajusta el stock.
package cyclic

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/notify"
)

// UseCase casos de uso del inventario cíclico.
type UseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
	pub   notify.Publisher
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso de conteo cíclico.
func NewUseCase(tx repository.TxRunner, repos repository.Repos, pub notify.Publisher, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, repos: repos, pub: pub, log: log}
}

// CreateTask crea una tarea de conteo tomando el snapshot teórico del ledger
// dentro de la misma transacción. El teórico nunca viene del cliente y no se
// actualiza aunque el stock siga moviéndose después.
func (uc *UseCase) CreateTask(ctx context.Context, in dto.CreateCyclicTaskRequest) (*entity.CyclicTask, error) {
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: la fecha es obligatoria", domain.ErrValidation)
	}
	if strings.TrimSpace(in.AssignedTo) == "" {
		return nil, fmt.Errorf("%w: la tarea debe tener asignado", domain.ErrValidation)
	}
	site, err := domain.ParseSite(in.Site)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la tarea no tiene artículos", domain.ErrValidation)
	}

	task := &entity.CyclicTask{
		Date:       strings.TrimSpace(in.Date),
		AssignedTo: strings.TrimSpace(in.AssignedTo),
		Status:     entity.TaskPending,
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		items := make([]entity.CyclicItem, 0, len(in.Items))
		for i, ln := range in.Items {
			if strings.TrimSpace(ln.Code) == "" {
				return fmt.Errorf("%w: la línea %d no tiene código", domain.ErrValidation, i+1)
			}
			st, err := r.Stock.Get(ctx, strings.TrimSpace(ln.Code), site)
			if err != nil {
				return err
			}
			items = append(items, entity.CyclicItem{
				Code:             strings.TrimSpace(ln.Code),
				Description:      strings.TrimSpace(ln.Description),
				Size:             ln.Size,
				TheoreticalStock: st.Total(),
			})
		}
		id, err := r.Cyclic.Insert(ctx, task)
		if err != nil {
			return err
		}
		task.ID = id
		if err := r.Cyclic.InsertItems(ctx, id, items); err != nil {
			return err
		}
		task.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("task_id", task.ID).Str("assigned_to", task.AssignedTo).Int("items", len(task.Items)).Msg("tarea de conteo creada")
	uc.pub.Publish(notify.Event{Kind: notify.KindCyclicCreated, Sites: []domain.Site{site}, RefID: task.ID})
	return task, nil
}

// RecordCount registra el conteo físico de una línea y su diferencia firmada
// (físico - teórico). Solo sobre tareas pendientes.
func (uc *UseCase) RecordCount(ctx context.Context, taskID int64, in dto.RecordCountRequest) error {
	if in.PhysicalCount < 0 {
		return fmt.Errorf("%w: el conteo físico no puede ser negativo", domain.ErrValidation)
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		return recordCount(ctx, r.Cyclic, taskID, in)
	})
}

// CompleteTask cierra una tarea. Acepta los conteos restantes en el mismo
// request; si tras aplicarlos queda alguna línea sin contar devuelve
// ErrIncompleteCount y no cambia nada. La transición es de una sola vía.
func (uc *UseCase) CompleteTask(ctx context.Context, taskID int64, completedBy string, in dto.CompleteCyclicTaskRequest) error {
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		task, err := r.Cyclic.Get(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Status != entity.TaskPending {
			return fmt.Errorf("%w: la tarea %d ya fue completada", domain.ErrInvalidState, taskID)
		}
		for _, c := range in.Counts {
			if c.PhysicalCount < 0 {
				return fmt.Errorf("%w: el conteo físico no puede ser negativo", domain.ErrValidation)
			}
			if err := recordCount(ctx, r.Cyclic, taskID, c); err != nil {
				return err
			}
		}
		uncounted, err := r.Cyclic.CountUncounted(ctx, taskID)
		if err != nil {
			return err
		}
		if uncounted > 0 {
			return fmt.Errorf("%w: faltan %d artículos por contar", domain.ErrIncompleteCount, uncounted)
		}
		return r.Cyclic.Complete(ctx, taskID, completedBy)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Int64("task_id", taskID).Str("completed_by", completedBy).Msg("tarea de conteo completada")
	uc.pub.Publish(notify.Event{Kind: notify.KindCyclicCompleted, RefID: taskID})
	return nil
}

// List devuelve las tareas que cumplen el filtro, sin líneas.
func (uc *UseCase) List(ctx context.Context, f repository.CyclicTaskFilter) ([]entity.CyclicTask, error) {
	return uc.repos.Cyclic.List(ctx, f)
}

// Get devuelve una tarea con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.CyclicTask, error) {
	task, err := uc.repos.Cyclic.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.repos.Cyclic.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Items = items
	return task, nil
}

// Stats estadísticas agregadas de tareas.
func (uc *UseCase) Stats(ctx context.Context) (*entity.CyclicStats, error) {
	return uc.repos.Cyclic.Stats(ctx)
}

// recordCount valida el estado de la tarea, localiza la línea y persiste el
// conteo con su diferencia.
func recordCount(ctx context.Context, cyclic repository.CyclicTaskRepository, taskID int64, in dto.RecordCountRequest) error {
	task, err := cyclic.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status != entity.TaskPending {
		return fmt.Errorf("%w: la tarea %d ya fue completada", domain.ErrInvalidState, taskID)
	}
	items, err := cyclic.ListItems(ctx, taskID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == in.ItemID {
			diff := in.PhysicalCount - it.TheoreticalStock
			return cyclic.RecordCount(ctx, taskID, it.ID, in.PhysicalCount, diff)
		}
	}
	return fmt.Errorf("%w: la línea %d no pertenece a la tarea %d", domain.ErrNotFound, in.ItemID, taskID)
}
