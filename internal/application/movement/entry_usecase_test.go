package movement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/movement"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/notify"
)

func entryRequest(site string, lines ...dto.MovementLineRequest) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{Date: "2026-03-10", Site: site, Items: lines}
}

func TestEntryCreate_AcreditaStockNuevo(t *testing.T) {
	tx, pub := newEngine()
	uc := movement.NewEntryUseCase(tx, tx.repos(), pub, zerolog.Nop())

	e, err := uc.Create(context.Background(), "Ana", entryRequest("CEDIS",
		dto.MovementLineRequest{Code: "BOT-01", Description: "Botas", Qty: 10},
		dto.MovementLineRequest{Code: "CAS-02", Description: "Casco", Qty: 4},
	))
	require.NoError(t, err)
	assert.Equal(t, 14, e.TotalItems, "el total siempre se recalcula de las líneas")

	it, _ := tx.stock.Get(context.Background(), "BOT-01", domain.SiteCedis)
	assert.Equal(t, 10, it.StockNew, "la entrada acredita el pool nuevo")
	assert.Equal(t, 0, it.StockRecovered)
	assert.Equal(t, entity.StatusInStock, it.Status)

	ev, err := pub.last()
	require.NoError(t, err)
	assert.Equal(t, notify.KindEntryCreated, ev.Kind)
	assert.Equal(t, []domain.Site{domain.SiteCedis}, ev.Sites)
}

func TestEntryCreate_CreaRegistroSiNoExiste(t *testing.T) {
	tx, pub := newEngine()
	uc := movement.NewEntryUseCase(tx, tx.repos(), pub, zerolog.Nop())

	_, err := uc.Create(context.Background(), "Ana", entryRequest("NLD",
		dto.MovementLineRequest{Code: "GUA-07", Description: "Guantes", Qty: 3}))
	require.NoError(t, err)

	it, _ := tx.stock.Get(context.Background(), "GUA-07", domain.SiteNLD)
	assert.True(t, it.Exists(), "la entrada materializa el registro de stock")
	assert.Equal(t, 3, it.StockNew)
}

func TestEntryCreate_ValidaLineas(t *testing.T) {
	tx, pub := newEngine()
	uc := movement.NewEntryUseCase(tx, tx.repos(), pub, zerolog.Nop())

	cases := []dto.CreateEntryRequest{
		entryRequest("CEDIS"), // sin líneas
		entryRequest("CEDIS", dto.MovementLineRequest{Code: "", Description: "x", Qty: 1}),
		entryRequest("CEDIS", dto.MovementLineRequest{Code: "A", Description: "x", Qty: 0}),
		entryRequest("CEDIS", dto.MovementLineRequest{Code: "A", Description: "x", Qty: -5}),
		entryRequest("OTRO", dto.MovementLineRequest{Code: "A", Description: "x", Qty: 1}),
		{Site: "CEDIS", Items: []dto.MovementLineRequest{{Code: "A", Description: "x", Qty: 1}}}, // sin fecha
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), "Ana", in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Zero(t, tx.runs, "ninguna validación fallida debe abrir transacción")
	assert.Empty(t, pub.events, "ningún evento sin commit")
}

func TestEntryCreate_RollbackNoDejaEstadoParcial(t *testing.T) {
	tx, pub := newEngine()
	boom := errors.New("falla inyectada")
	tx.entries.failInsert = boom
	uc := movement.NewEntryUseCase(tx, tx.repos(), pub, zerolog.Nop())

	_, err := uc.Create(context.Background(), "Ana", entryRequest("CEDIS",
		dto.MovementLineRequest{Code: "BOT-01", Description: "Botas", Qty: 10}))
	require.ErrorIs(t, err, boom)

	assert.Zero(t, tx.stock.total("BOT-01", domain.SiteCedis), "el ledger no debe moverse si la tx falla")
	assert.Empty(t, tx.entries.headers, "la cabecera no debe sobrevivir al rollback")
	assert.Empty(t, pub.events, "sin commit no hay evento")
}

func TestEntryUpdate_RevierteYReaplica(t *testing.T) {
	tx, pub := newEngine()
	uc := movement.NewEntryUseCase(tx, tx.repos(), pub, zerolog.Nop())

	e, err := uc.Create(context.Background(), "Ana", entryRequest("CEDIS",
		dto.MovementLineRequest{Code: "BOT-01", Description: "Botas", Qty: 10}))
	require.NoError(t, err)

	// Corrección: la entrada real fue de 6, no de 10.
	_, err = uc.Update(context.Background(), e.ID, entryRequest("CEDIS",
		dto.MovementLineRequest{Code: "BOT-01", Description: "Botas", Qty: 6}))
	require.NoError(t, err)

	assert.Equal(t, 6, tx.stock.total("BOT-01", domain.SiteCedis),
		"tras revertir y reaplicar queda el efecto de la versión corregida")
}

func TestEntryUpdate_ReversionClampaEnCero(t *testing.T) {
	tx, pub := newEngine()
	uc := movement.NewEntryUseCase(tx, tx.repos(), pub, zerolog.Nop())

	e, err := uc.Create(context.Background(), "Ana", entryRequest("CEDIS",
		dto.MovementLineRequest{Code: "BOT-01", Description: "Botas", Qty: 10}))
	require.NoError(t, err)

	// Una salida posterior dejó el stock por debajo de la cantidad original.
	it, _ := tx.stock.Get(context.Background(), "BOT-01", domain.SiteCedis)
	it.StockNew = 4
	require.NoError(t, tx.stock.Save(context.Background(), it))

	_, err = uc.Update(context.Background(), e.ID, entryRequest("CEDIS",
		dto.MovementLineRequest{Code: "BOT-01", Description: "Botas", Qty: 2}))
	require.NoError(t, err)

	// La reversión de 10 sobre 4 clampa en 0; la reaplicación suma 2.
	assert.Equal(t, 2, tx.stock.total("BOT-01", domain.SiteCedis))
}

func TestEntryDelete_RevierteYElimina(t *testing.T) {
	tx, pub := newEngine()
	uc := movement.NewEntryUseCase(tx, tx.repos(), pub, zerolog.Nop())

	e, err := uc.Create(context.Background(), "Ana", entryRequest("ACUÑA",
		dto.MovementLineRequest{Code: "CHA-03", Description: "Chaleco", Qty: 5}))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), e.ID))
	assert.Zero(t, tx.stock.total("CHA-03", domain.SiteAcuna))
	_, err = uc.Get(context.Background(), e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryDelete_NoExiste(t *testing.T) {
	tx, pub := newEngine()
	uc := movement.NewEntryUseCase(tx, tx.repos(), pub, zerolog.Nop())

	err := uc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
