// Package stock operaciones directas sobre el ledger: consulta por sitio,
// altas y ajustes manuales, corrección de datos descriptivos y bajas. Las
// mutaciones derivadas de movimientos viven en el paquete movement.
package stock

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

// UseCase casos de uso del ledger de stock.
type UseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
	pub   notify.Publisher
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso de stock.
func NewUseCase(tx repository.TxRunner, repos repository.Repos, pub notify.Publisher, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, repos: repos, pub: pub, log: log}
}

// ListBySite devuelve el inventario de un sitio con el status recalculado en
// lectura.
func (uc *UseCase) ListBySite(ctx context.Context, site string) ([]entity.StockItem, error) {
	s, err := domain.ParseSite(site)
	if err != nil {
		return nil, err
	}
	return uc.repos.Stock.ListBySite(ctx, s)
}

// SetItem alta o ajuste manual de un artículo: fija los pools a los valores
// dados y deriva el status. Es la única vía para escribir pools sin pasar por
// un movimiento.
func (uc *UseCase) SetItem(ctx context.Context, in dto.SetStockRequest) (*entity.StockItem, error) {
	site, err := domain.ParseSite(in.Site)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Code) == "" {
		return nil, fmt.Errorf("%w: el código es obligatorio", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: la descripción es obligatoria", domain.ErrValidation)
	}
	if in.StockNew < 0 || in.StockRecovered < 0 || in.StockMin < 0 {
		return nil, fmt.Errorf("%w: los valores de stock no pueden ser negativos", domain.ErrValidation)
	}

	item := &entity.StockItem{
		Code:           strings.TrimSpace(in.Code),
		Description:    strings.TrimSpace(in.Description),
		Size:           in.Size,
		StockNew:       in.StockNew,
		StockRecovered: in.StockRecovered,
		StockMin:       in.StockMin,
		Site:           site,
	}
	item.Recompute()

	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		cur, err := r.Stock.GetForUpdate(ctx, item.Code, site)
		if err != nil {
			return err
		}
		item.ID = cur.ID
		return r.Stock.Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("code", item.Code).Str("site", string(site)).Str("status", item.Status).Msg("stock ajustado manualmente")
	uc.pub.Publish(notify.Event{Kind: notify.KindInventoryChanged, Sites: []domain.Site{site}, RefID: item.ID})
	return item, nil
}

// UpdateDetails corrige descripción, talla y mínimo de un artículo sin tocar
// los pools. El status se recalcula contra el nuevo umbral.
func (uc *UseCase) UpdateDetails(ctx context.Context, id int64, site string, in dto.UpdateStockDetailsRequest) error {
	s, err := domain.ParseSite(site)
	if err != nil {
		return err
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: la descripción es obligatoria", domain.ErrValidation)
	}
	if in.StockMin < 0 {
		return fmt.Errorf("%w: el stock mínimo no puede ser negativo", domain.ErrValidation)
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Stock.UpdateDetails(ctx, id, s, strings.TrimSpace(in.Description), in.Size, in.StockMin)
	})
	if err != nil {
		return err
	}

	uc.pub.Publish(notify.Event{Kind: notify.KindInventoryChanged, Sites: []domain.Site{s}, RefID: id})
	return nil
}

// Delete da de baja un artículo del ledger.
func (uc *UseCase) Delete(ctx context.Context, id int64, site string) error {
	s, err := domain.ParseSite(site)
	if err != nil {
		return err
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Stock.Delete(ctx, id, s)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Int64("stock_id", id).Str("site", string(s)).Msg("artículo eliminado del ledger")
	uc.pub.Publish(notify.Event{Kind: notify.KindInventoryChanged, Sites: []domain.Site{s}, RefID: id})
	return nil
}
