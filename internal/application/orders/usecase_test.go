package orders_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/orders"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/notify"
)

type fakeOrderRepo struct {
	orders map[int64]*entity.Order
	items  map[int64][]entity.OrderItem
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*entity.Order), items: make(map[int64][]entity.OrderItem)}
}

func (f *fakeOrderRepo) LastID(context.Context) (int64, error) { return f.nextID, nil }

func (f *fakeOrderRepo) Insert(_ context.Context, o *entity.Order) (int64, error) {
	f.nextID++
	cp := *o
	cp.ID = f.nextID
	f.orders[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeOrderRepo) InsertItems(_ context.Context, orderID int64, items []entity.OrderItem) error {
	f.items[orderID] = append([]entity.OrderItem(nil), items...)
	return nil
}

func (f *fakeOrderRepo) List(context.Context) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListItems(_ context.Context, orderID int64) ([]entity.OrderItem, error) {
	return append([]entity.OrderItem(nil), f.items[orderID]...), nil
}

func (f *fakeOrderRepo) Suggestions(context.Context, *domain.Site) ([]entity.Suggestion, error) {
	return nil, nil
}

type fakeTx struct{ repos repository.Repos }

func (f *fakeTx) Run(_ context.Context, fn func(r repository.Repos) error) error {
	return fn(f.repos)
}

type nopPublisher struct{}

func (nopPublisher) Publish(notify.Event) {}

func newUseCase() (*orders.UseCase, *fakeOrderRepo) {
	repo := newFakeOrderRepo()
	repos := repository.Repos{Orders: repo}
	return orders.NewUseCase(&fakeTx{repos: repos}, repos, nopPublisher{}, zerolog.Nop()), repo
}

func TestOrderCreate_FolioConsecutivo(t *testing.T) {
	uc, _ := newUseCase()

	in := dto.CreateOrderRequest{
		Date: "2026-03-10",
		Items: []dto.OrderLineRequest{
			{Code: "BOT-01", Description: "Botas", Qty: 3, UnitPrice: decimal.NewFromFloat(150.50)},
		},
	}
	o1, err := uc.Create(context.Background(), "Ana", in)
	require.NoError(t, err)
	assert.Equal(t, "PED-0001", o1.OrderNumber, "el folio se genera en el servidor")

	o2, err := uc.Create(context.Background(), "Ana", in)
	require.NoError(t, err)
	assert.Equal(t, "PED-0002", o2.OrderNumber, "la numeración es consecutiva")
}

func TestOrderCreate_ImporteCalculado(t *testing.T) {
	uc, _ := newUseCase()

	o, err := uc.Create(context.Background(), "Ana", dto.CreateOrderRequest{
		Date: "2026-03-10",
		Items: []dto.OrderLineRequest{
			{Code: "BOT-01", Description: "Botas", Qty: 3, UnitPrice: decimal.NewFromFloat(150.50)},
			{Code: "CAS-02", Description: "Casco", Qty: 2, UnitPrice: decimal.NewFromFloat(99.99)},
		},
	})
	require.NoError(t, err)
	// 3*150.50 + 2*99.99 = 451.50 + 199.98 = 651.48
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(651.48)),
		"el importe total viene de las líneas, no del cliente: %s", o.TotalAmount)
	assert.Equal(t, entity.OrderPending, o.Status)
}

func TestOrderCreate_Validaciones(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Create(context.Background(), "Ana", dto.CreateOrderRequest{Date: "2026-03-10"})
	assert.ErrorIs(t, err, domain.ErrValidation, "sin líneas")

	_, err = uc.Create(context.Background(), "Ana", dto.CreateOrderRequest{
		Date:  "2026-03-10",
		Items: []dto.OrderLineRequest{{Code: "A", Description: "x", Qty: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "cantidad cero")

	_, err = uc.Create(context.Background(), "Ana", dto.CreateOrderRequest{
		Date:  "2026-03-10",
		Items: []dto.OrderLineRequest{{Code: "A", Description: "x", Qty: 1, UnitPrice: decimal.NewFromInt(-5)}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "precio negativo")
}
