// Package orders pedidos de reposición a proveedor, generados desde las
// sugerencias de artículos bajo mínimo. El folio PED-NNNN y el importe total
// se calculan siempre en el servidor.
package orders

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

// UseCase casos de uso de pedidos.
type UseCase struct {
	tx    repository.TxRunner
	repos repository.Repos
	pub   notify.Publisher
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(tx repository.TxRunner, repos repository.Repos, pub notify.Publisher, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, repos: repos, pub: pub, log: log}
}

// Create registra un pedido. El folio se deriva del último ID dentro de la
// transacción para que la numeración sea consecutiva.
func (uc *UseCase) Create(ctx context.Context, createdBy string, in dto.CreateOrderRequest) (*entity.Order, error) {
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: la fecha es obligatoria", domain.ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene líneas", domain.ErrValidation)
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for i, ln := range in.Items {
		if strings.TrimSpace(ln.Code) == "" {
			return nil, fmt.Errorf("%w: la línea %d no tiene código", domain.ErrValidation, i+1)
		}
		if ln.Qty <= 0 {
			return nil, fmt.Errorf("%w: la línea %d tiene cantidad inválida (%d)", domain.ErrValidation, i+1, ln.Qty)
		}
		if ln.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: la línea %d tiene precio negativo", domain.ErrValidation, i+1)
		}
		items = append(items, entity.OrderItem{
			Code:        strings.TrimSpace(ln.Code),
			Description: strings.TrimSpace(ln.Description),
			Size:        ln.Size,
			Qty:         ln.Qty,
			UnitPrice:   ln.UnitPrice,
		})
	}

	o := &entity.Order{
		Date:        strings.TrimSpace(in.Date),
		Supplier:    in.Supplier,
		Status:      entity.OrderPending,
		TotalAmount: entity.SumOrderAmount(items),
		CreatedBy:   createdBy,
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		lastID, err := r.Orders.LastID(ctx)
		if err != nil {
			return err
		}
		o.OrderNumber = fmt.Sprintf("PED-%04d", lastID+1)
		id, err := r.Orders.Insert(ctx, o)
		if err != nil {
			return err
		}
		o.ID = id
		return r.Orders.InsertItems(ctx, id, items)
	})
	if err != nil {
		return nil, err
	}
	o.Items = items

	uc.log.Info().Str("order_number", o.OrderNumber).Str("total", o.TotalAmount.String()).Msg("pedido registrado")
	uc.pub.Publish(notify.Event{Kind: notify.KindOrderCreated, RefID: o.ID})
	return o, nil
}

// List devuelve los pedidos con sus líneas.
func (uc *UseCase) List(ctx context.Context) ([]entity.Order, error) {
	orders, err := uc.repos.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := uc.repos.Orders.ListItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// Suggestions artículos con stock total por debajo del mínimo, con la cantidad
// sugerida de pedido.
func (uc *UseCase) Suggestions(ctx context.Context, site *domain.Site) ([]entity.Suggestion, error) {
	return uc.repos.Orders.Suggestions(ctx, site)
}
