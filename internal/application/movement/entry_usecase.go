package movement

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/notify"
)

// EntryUseCase recepción de mercancía: cada línea acredita el pool de stock
// nuevo del sitio de la entrada.
type EntryUseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
	pub   notify.Publisher
	log   zerolog.Logger
}

// NewEntryUseCase construye el caso de uso de entradas.
func NewEntryUseCase(tx repository.TxRunner, repos repository.Repos, pub notify.Publisher, log zerolog.Logger) *EntryUseCase {
	return &EntryUseCase{tx: tx, repos: repos, pub: pub, log: log}
}

// Create registra una entrada y acredita stock nuevo por cada línea. Cabecera,
// líneas y ledger se escriben en la misma transacción.
func (uc *EntryUseCase) Create(ctx context.Context, createdBy string, in dto.CreateEntryRequest) (*entity.Entry, error) {
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}
	site, err := domain.ParseSite(in.Site)
	if err != nil {
		return nil, err
	}
	items, err := toEntryItems(in.Items)
	if err != nil {
		return nil, err
	}

	e := &entity.Entry{
		Date:       strings.TrimSpace(in.Date),
		Site:       site,
		TotalItems: entity.SumEntryQty(items),
		CreatedBy:  createdBy,
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		id, err := r.Entries.Insert(ctx, e)
		if err != nil {
			return err
		}
		e.ID = id
		if err := r.Entries.InsertItems(ctx, id, items); err != nil {
			return err
		}
		for _, it := range items {
			if err := r.Stock.Increment(ctx, it.Code, it.Description, it.Size, site, it.Qty, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Items = items

	uc.log.Info().Int64("entry_id", e.ID).Str("site", string(site)).Int("total", e.TotalItems).Msg("entrada registrada")
	uc.pub.Publish(notify.Event{Kind: notify.KindEntryCreated, Sites: distinctSites(site), RefID: e.ID})
	return e, nil
}

// Update corrige una entrada: revierte el efecto de las líneas originales
// (resta clampada sobre stock nuevo) y reaplica las nuevas, todo en una
// transacción. Las filas de stock ausentes se omiten al revertir.
func (uc *EntryUseCase) Update(ctx context.Context, id int64, in dto.CreateEntryRequest) (*entity.Entry, error) {
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}
	site, err := domain.ParseSite(in.Site)
	if err != nil {
		return nil, err
	}
	items, err := toEntryItems(in.Items)
	if err != nil {
		return nil, err
	}

	var oldSite domain.Site
	e := &entity.Entry{
		ID:         id,
		Date:       strings.TrimSpace(in.Date),
		Site:       site,
		TotalItems: entity.SumEntryQty(items),
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		old, err := r.Entries.Get(ctx, id)
		if err != nil {
			return err
		}
		oldSite = old.Site
		e.CreatedBy = old.CreatedBy

		oldItems, err := r.Entries.ListItems(ctx, id)
		if err != nil {
			return err
		}
		if err := reverseEntryItems(ctx, r.Stock, old.Site, oldItems); err != nil {
			return err
		}
		if err := r.Entries.UpdateHeader(ctx, e); err != nil {
			return err
		}
		if err := r.Entries.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := r.Entries.InsertItems(ctx, id, items); err != nil {
			return err
		}
		for _, it := range items {
			if err := r.Stock.Increment(ctx, it.Code, it.Description, it.Size, site, it.Qty, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Items = items

	uc.log.Info().Int64("entry_id", id).Msg("entrada corregida")
	uc.pub.Publish(notify.Event{Kind: notify.KindEntryUpdated, Sites: distinctSites(oldSite, site), RefID: id})
	return e, nil
}

// Delete elimina una entrada revirtiendo primero su efecto sobre el ledger.
func (uc *EntryUseCase) Delete(ctx context.Context, id int64) error {
	var site domain.Site
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		old, err := r.Entries.Get(ctx, id)
		if err != nil {
			return err
		}
		site = old.Site

		oldItems, err := r.Entries.ListItems(ctx, id)
		if err != nil {
			return err
		}
		if err := reverseEntryItems(ctx, r.Stock, old.Site, oldItems); err != nil {
			return err
		}
		if err := r.Entries.DeleteItems(ctx, id); err != nil {
			return err
		}
		return r.Entries.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Int64("entry_id", id).Msg("entrada eliminada")
	uc.pub.Publish(notify.Event{Kind: notify.KindEntryDeleted, Sites: distinctSites(site), RefID: id})
	return nil
}

// List devuelve las entradas con sus líneas, opcionalmente filtradas por sitio.
func (uc *EntryUseCase) List(ctx context.Context, site *domain.Site) ([]entity.Entry, error) {
	entries, err := uc.repos.Entries.List(ctx, site)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		items, err := uc.repos.Entries.ListItems(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Items = items
	}
	return entries, nil
}

// Get devuelve una entrada con sus líneas.
func (uc *EntryUseCase) Get(ctx context.Context, id int64) (*entity.Entry, error) {
	e, err := uc.repos.Entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.repos.Entries.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Items = items
	return e, nil
}

// reverseEntryItems deshace el crédito de una entrada: resta clampada sobre el
// pool nuevo, bajo bloqueo de fila. Las filas inexistentes se omiten.
func reverseEntryItems(ctx context.Context, stock repository.StockRepository, site domain.Site, items []entity.EntryItem) error {
	for _, it := range items {
		st, err := stock.GetForUpdate(ctx, it.Code, site)
		if err != nil {
			return err
		}
		if !st.Exists() {
			continue
		}
		st.StockNew = entity.ClampSub(st.StockNew, it.Qty)
		st.Recompute()
		if err := stock.Save(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
