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

// RecoveryUseCase procesamiento de equipo devuelto por colaboradores. Cada
// línea lleva su destino: un sitio (acredita el pool recuperado de ese sitio,
// aunque no sea el sitio de origen) o Desecho (sale del tracking sin tocar el
// ledger). Las recuperaciones no se corrigen ni se eliminan.
type RecoveryUseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
	pub   notify.Publisher
	log   zerolog.Logger
}

// NewRecoveryUseCase construye el caso de uso de recuperaciones.
func NewRecoveryUseCase(tx repository.TxRunner, repos repository.Repos, pub notify.Publisher, log zerolog.Logger) *RecoveryUseCase {
	return &RecoveryUseCase{tx: tx, repos: repos, pub: pub, log: log}
}

// Create registra una recuperación y acredita stock recuperado en el destino
// de cada línea que no sea Desecho.
func (uc *RecoveryUseCase) Create(ctx context.Context, createdBy string, in dto.CreateRecoveryRequest) (*entity.Recovery, error) {
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.EmployeeName) == "" {
		return nil, fmt.Errorf("%w: el nombre del colaborador es obligatorio", domain.ErrValidation)
	}
	items, err := toRecoveryItems(in.Items)
	if err != nil {
		return nil, err
	}

	rec := &entity.Recovery{
		Date:         strings.TrimSpace(in.Date),
		EmployeeID:   strings.TrimSpace(in.EmployeeID),
		EmployeeName: strings.TrimSpace(in.EmployeeName),
		TotalItems:   entity.SumRecoveryQty(items),
		CreatedBy:    createdBy,
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		id, err := r.Recoveries.Insert(ctx, rec)
		if err != nil {
			return err
		}
		rec.ID = id
		if err := r.Recoveries.InsertItems(ctx, id, items); err != nil {
			return err
		}
		for _, it := range items {
			if it.Destination.IsDiscard() {
				continue
			}
			if err := r.Stock.Increment(ctx, it.Code, it.Description, it.Size, it.Destination.Site(), 0, it.Qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	rec.Items = items

	var affected []domain.Site
	for _, it := range items {
		if !it.Destination.IsDiscard() {
			affected = append(affected, it.Destination.Site())
		}
	}
	uc.log.Info().
		Int64("recovery_id", rec.ID).
		Str("employee", rec.EmployeeName).
		Bool("discard", rec.HasDiscard()).
		Msg("recuperación registrada")
	uc.pub.Publish(notify.Event{Kind: notify.KindRecoveryCreated, Sites: distinctSites(affected...), RefID: rec.ID})
	return rec, nil
}

// List devuelve las recuperaciones con sus líneas. Con filtro de sitio se
// incluyen las que tienen al menos una línea hacia ese sitio o hacia Desecho.
func (uc *RecoveryUseCase) List(ctx context.Context, site *domain.Site) ([]entity.Recovery, error) {
	recoveries, err := uc.repos.Recoveries.List(ctx, site)
	if err != nil {
		return nil, err
	}
	for i := range recoveries {
		items, err := uc.repos.Recoveries.ListItems(ctx, recoveries[i].ID)
		if err != nil {
			return nil, err
		}
		recoveries[i].Items = items
	}
	return recoveries, nil
}

// Get devuelve una recuperación con sus líneas.
func (uc *RecoveryUseCase) Get(ctx context.Context, id int64) (*entity.Recovery, error) {
	rec, err := uc.repos.Recoveries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.repos.Recoveries.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return rec, nil
}
