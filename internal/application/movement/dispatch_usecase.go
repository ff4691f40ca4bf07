package movement

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

// DispatchUseCase salidas de mercancía hacia colaboradores. El stock se
// descuenta al crear la salida con asignación nuevo-primero; la aprobación
// posterior solo cambia el estado.
type DispatchUseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
	pub   notify.Publisher
	log   zerolog.Logger
}

// NewDispatchUseCase construye el caso de uso de salidas.
func NewDispatchUseCase(tx repository.TxRunner, repos repository.Repos, pub notify.Publisher, log zerolog.Logger) *DispatchUseCase {
	return &DispatchUseCase{tx: tx, repos: repos, pub: pub, log: log}
}

// Create registra una salida en estado Pendiente y descuenta stock línea por
// línea. El sobregiro no se rechaza: el stock clampa en cero y la diferencia se
// devuelve como advertencia.
func (uc *DispatchUseCase) Create(ctx context.Context, createdBy string, in dto.CreateDispatchRequest) (*entity.Dispatch, []string, error) {
	d, items, err := uc.buildDispatch(in)
	if err != nil {
		return nil, nil, err
	}
	d.CreatedBy = createdBy

	var warnings []string
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		warnings = nil
		id, err := r.Dispatches.Insert(ctx, d)
		if err != nil {
			return err
		}
		d.ID = id
		if err := r.Dispatches.InsertItems(ctx, id, items); err != nil {
			return err
		}
		warnings, err = allocateDispatchItems(ctx, r.Stock, d.Site, items)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	d.Items = items

	uc.log.Info().
		Int64("dispatch_id", d.ID).
		Str("site", string(d.Site)).
		Str("employee", d.EmployeeName).
		Int("warnings", len(warnings)).
		Msg("salida registrada")
	uc.pub.Publish(notify.Event{
		Kind:     notify.KindDispatchCreated,
		Sites:    distinctSites(d.Site),
		RefID:    d.ID,
		Oversell: len(warnings) > 0,
	})
	return d, warnings, nil
}

// Update corrige una salida Pendiente: revierte las líneas originales
// acreditando el pool nuevo y reaplica las nuevas con la asignación normal.
// Una salida aprobada es inmutable.
func (uc *DispatchUseCase) Update(ctx context.Context, id int64, in dto.CreateDispatchRequest) (*entity.Dispatch, []string, error) {
	d, items, err := uc.buildDispatch(in)
	if err != nil {
		return nil, nil, err
	}
	d.ID = id

	var (
		warnings []string
		oldSite  domain.Site
	)
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		warnings = nil
		old, err := r.Dispatches.Get(ctx, id)
		if err != nil {
			return err
		}
		if old.Status != entity.DispatchPending {
			return fmt.Errorf("%w: la salida %d ya fue aprobada", domain.ErrInvalidState, id)
		}
		oldSite = old.Site
		d.CreatedBy = old.CreatedBy
		d.Status = old.Status

		oldItems, err := r.Dispatches.ListItems(ctx, id)
		if err != nil {
			return err
		}
		if err := reverseDispatchItems(ctx, r.Stock, old.Site, oldItems); err != nil {
			return err
		}
		if err := r.Dispatches.UpdateHeader(ctx, d); err != nil {
			return err
		}
		if err := r.Dispatches.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := r.Dispatches.InsertItems(ctx, id, items); err != nil {
			return err
		}
		warnings, err = allocateDispatchItems(ctx, r.Stock, d.Site, items)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	d.Items = items

	uc.log.Info().Int64("dispatch_id", id).Msg("salida corregida")
	uc.pub.Publish(notify.Event{
		Kind:     notify.KindDispatchUpdated,
		Sites:    distinctSites(oldSite, d.Site),
		RefID:    id,
		Oversell: len(warnings) > 0,
	})
	return d, warnings, nil
}

// Delete elimina una salida Pendiente devolviendo las cantidades al pool nuevo.
func (uc *DispatchUseCase) Delete(ctx context.Context, id int64) error {
	var site domain.Site
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		old, err := r.Dispatches.Get(ctx, id)
		if err != nil {
			return err
		}
		if old.Status != entity.DispatchPending {
			return fmt.Errorf("%w: la salida %d ya fue aprobada", domain.ErrInvalidState, id)
		}
		site = old.Site

		oldItems, err := r.Dispatches.ListItems(ctx, id)
		if err != nil {
			return err
		}
		if err := reverseDispatchItems(ctx, r.Stock, old.Site, oldItems); err != nil {
			return err
		}
		if err := r.Dispatches.DeleteItems(ctx, id); err != nil {
			return err
		}
		return r.Dispatches.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Int64("dispatch_id", id).Msg("salida eliminada")
	uc.pub.Publish(notify.Event{Kind: notify.KindDispatchDeleted, Sites: distinctSites(site), RefID: id})
	return nil
}

// Approve marca una salida Pendiente como Aprobado. No toca el ledger: el
// stock ya se descontó al crearla. La transición es terminal.
func (uc *DispatchUseCase) Approve(ctx context.Context, id int64, approvedBy string) error {
	var site domain.Site
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		old, err := r.Dispatches.Get(ctx, id)
		if err != nil {
			return err
		}
		if old.Status != entity.DispatchPending {
			return fmt.Errorf("%w: la salida %d no está pendiente", domain.ErrInvalidState, id)
		}
		site = old.Site
		return r.Dispatches.UpdateStatus(ctx, id, entity.DispatchApproved, approvedBy)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Int64("dispatch_id", id).Str("approved_by", approvedBy).Msg("salida aprobada")
	uc.pub.Publish(notify.Event{Kind: notify.KindDispatchApproved, Sites: distinctSites(site), RefID: id})
	return nil
}

// List devuelve las salidas con sus líneas, opcionalmente filtradas por sitio.
func (uc *DispatchUseCase) List(ctx context.Context, site *domain.Site) ([]entity.Dispatch, error) {
	dispatches, err := uc.repos.Dispatches.List(ctx, site)
	if err != nil {
		return nil, err
	}
	for i := range dispatches {
		items, err := uc.repos.Dispatches.ListItems(ctx, dispatches[i].ID)
		if err != nil {
			return nil, err
		}
		dispatches[i].Items = items
	}
	return dispatches, nil
}

// Get devuelve una salida con sus líneas.
func (uc *DispatchUseCase) Get(ctx context.Context, id int64) (*entity.Dispatch, error) {
	d, err := uc.repos.Dispatches.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.repos.Dispatches.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return d, nil
}

// buildDispatch valida el request y arma la cabecera en estado Pendiente.
func (uc *DispatchUseCase) buildDispatch(in dto.CreateDispatchRequest) (*entity.Dispatch, []entity.DispatchItem, error) {
	if err := validateDate(in.Date); err != nil {
		return nil, nil, err
	}
	site, err := domain.ParseSite(in.Site)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(in.EmployeeName) == "" {
		return nil, nil, fmt.Errorf("%w: el nombre del colaborador es obligatorio", domain.ErrValidation)
	}
	items, err := toDispatchItems(in.Items)
	if err != nil {
		return nil, nil, err
	}
	dispatchType := strings.TrimSpace(in.DispatchType)
	if dispatchType == "" {
		dispatchType = entity.DispatchTypeNormal
	}
	return &entity.Dispatch{
		Date:         strings.TrimSpace(in.Date),
		EmployeeID:   strings.TrimSpace(in.EmployeeID),
		EmployeeName: strings.TrimSpace(in.EmployeeName),
		Service:      strings.TrimSpace(in.Service),
		Site:         site,
		DispatchType: dispatchType,
		Status:       entity.DispatchPending,
		TotalItems:   entity.SumDispatchQty(items),
	}, items, nil
}

// allocateDispatchItems descuenta cada línea con la regla nuevo-primero bajo
// bloqueo de fila. Devuelve una advertencia por cada faltante; las filas de
// stock inexistentes no se materializan.
func allocateDispatchItems(ctx context.Context, stock repository.StockRepository, site domain.Site, items []entity.DispatchItem) ([]string, error) {
	var warnings []string
	for _, it := range items {
		st, err := stock.GetForUpdate(ctx, it.Code, site)
		if err != nil {
			return nil, err
		}
		newAfter, recoveredAfter, shortage := entity.Allocate(st.StockNew, st.StockRecovered, it.Qty)
		if shortage > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"stock insuficiente para %s en %s: faltaron %d de %d", it.Code, site, shortage, it.Qty))
		}
		if !st.Exists() {
			continue
		}
		st.StockNew = newAfter
		st.StockRecovered = recoveredAfter
		st.Recompute()
		if err := stock.Save(ctx, st); err != nil {
			return nil, err
		}
	}
	return warnings, nil
}

// reverseDispatchItems devuelve las cantidades de una salida al ledger. Todo el
// crédito va al pool nuevo, sin importar de qué pool salió originalmente; las
// filas inexistentes se omiten.
func reverseDispatchItems(ctx context.Context, stock repository.StockRepository, site domain.Site, items []entity.DispatchItem) error {
	for _, it := range items {
		st, err := stock.GetForUpdate(ctx, it.Code, site)
		if err != nil {
			return err
		}
		if !st.Exists() {
			continue
		}
		st.StockNew += it.Qty
		st.Recompute()
		if err := stock.Save(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
