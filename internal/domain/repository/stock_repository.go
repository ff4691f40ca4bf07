package repository

import (
	"context"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
)

// StockRepository acceso al registro autoritativo de stock por (code, site).
//
// Toda mutación de los pools debe ocurrir dentro de una transacción abierta
// por el TxRunner: o mediante Increment (upsert aditivo de un solo round trip)
// o mediante la secuencia GetForUpdate + Save, que queda serializada por el
// bloqueo de fila hasta el commit. Nunca se escriben valores calculados fuera
// de la transacción activa.
type StockRepository interface {
	// Get devuelve el registro de stock; si no existe devuelve un registro con
	// pools en cero e ID cero (Exists() == false).
	Get(ctx context.Context, code string, site domain.Site) (*entity.StockItem, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT ... FOR UPDATE)
	// para leer-modificar-escribir sin carreras entre escritores concurrentes.
	GetForUpdate(ctx context.Context, code string, site domain.Site) (*entity.StockItem, error)
	// Increment upsert aditivo: crea el registro si no existe y suma los deltas
	// a los pools en un solo statement, recalculando el status en la misma
	// sentencia. Es la primitiva de Entradas y Recuperaciones.
	Increment(ctx context.Context, code, description string, size *string, site domain.Site, newDelta, recoveredDelta int) error
	// Save upsert de valores completos. Solo debe llamarse con la fila
	// bloqueada por GetForUpdate en la misma transacción.
	Save(ctx context.Context, item *entity.StockItem) error

	ListBySite(ctx context.Context, site domain.Site) ([]entity.StockItem, error)
	UpdateDetails(ctx context.Context, id int64, site domain.Site, description string, size *string, stockMin int) error
	Delete(ctx context.Context, id int64, site domain.Site) error
}
