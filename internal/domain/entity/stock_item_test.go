package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		stockMin int
		want     string
	}{
		{"total cero es Agotado", 0, 5, entity.StatusOutOfStock},
		{"total cero con mínimo cero es Agotado", 0, 0, entity.StatusOutOfStock},
		{"total igual al mínimo es Reordenar", 5, 5, entity.StatusReorder},
		{"total debajo del mínimo es Reordenar", 3, 5, entity.StatusReorder},
		{"total arriba del mínimo es En Stock", 6, 5, entity.StatusInStock},
		{"total positivo con mínimo cero es En Stock", 1, 0, entity.StatusInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.DeriveStatus(tt.total, tt.stockMin))
		})
	}
}

func TestAllocate_NuevoPrimero(t *testing.T) {
	// Caso de referencia: 5 nuevo + 10 recuperado, salida de 8.
	// El pool nuevo se agota (5) y el resto (3) sale del recuperado.
	newAfter, recoveredAfter, shortage := entity.Allocate(5, 10, 8)
	assert.Equal(t, 0, newAfter, "el pool nuevo debe agotarse primero")
	assert.Equal(t, 7, recoveredAfter, "el faltante debe salir del recuperado")
	assert.Equal(t, 0, shortage, "no hay faltante con stock suficiente")
}

func TestAllocate_SoloNuevo(t *testing.T) {
	newAfter, recoveredAfter, shortage := entity.Allocate(10, 4, 6)
	assert.Equal(t, 4, newAfter)
	assert.Equal(t, 4, recoveredAfter, "el recuperado no se toca si el nuevo alcanza")
	assert.Equal(t, 0, shortage)
}

func TestAllocate_SobregiroClampa(t *testing.T) {
	// Salida mayor al stock total: ambos pools clampan en cero y la diferencia
	// se reporta como faltante, nunca como error.
	newAfter, recoveredAfter, shortage := entity.Allocate(2, 3, 10)
	assert.Equal(t, 0, newAfter)
	assert.Equal(t, 0, recoveredAfter)
	assert.Equal(t, 5, shortage, "faltante = pedido - disponible")
}

func TestAllocate_SinStock(t *testing.T) {
	newAfter, recoveredAfter, shortage := entity.Allocate(0, 0, 4)
	assert.Equal(t, 0, newAfter)
	assert.Equal(t, 0, recoveredAfter)
	assert.Equal(t, 4, shortage)
}

func TestClampSub(t *testing.T) {
	assert.Equal(t, 3, entity.ClampSub(5, 2))
	assert.Equal(t, 0, entity.ClampSub(2, 5), "la resta nunca baja de cero")
	assert.Equal(t, 0, entity.ClampSub(4, 4))
}

func TestStockItem_Recompute(t *testing.T) {
	it := entity.StockItem{StockNew: 2, StockRecovered: 1, StockMin: 5}
	it.Recompute()
	assert.Equal(t, entity.StatusReorder, it.Status)

	it.StockNew, it.StockRecovered = 0, 0
	it.Recompute()
	assert.Equal(t, entity.StatusOutOfStock, it.Status)
}

func TestStockItem_Exists(t *testing.T) {
	var it entity.StockItem
	assert.False(t, it.Exists(), "un registro sin ID no está persistido")
	it.ID = 7
	assert.True(t, it.Exists())
}
