package repository

import (
	"context"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
)

// EntryRepository persistencia de entradas (cabecera + líneas).
type EntryRepository interface {
	// Insert crea la cabecera y devuelve el ID generado, normalizado entre
	// dialectos (RETURNING id en PostgreSQL, LastInsertId en MySQL).
	Insert(ctx context.Context, e *entity.Entry) (int64, error)
	InsertItems(ctx context.Context, entryID int64, items []entity.EntryItem) error
	Get(ctx context.Context, id int64) (*entity.Entry, error)
	ListItems(ctx context.Context, entryID int64) ([]entity.EntryItem, error)
	DeleteItems(ctx context.Context, entryID int64) error
	UpdateHeader(ctx context.Context, e *entity.Entry) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, site *domain.Site) ([]entity.Entry, error)
}

// DispatchRepository persistencia de salidas.
type DispatchRepository interface {
	Insert(ctx context.Context, d *entity.Dispatch) (int64, error)
	InsertItems(ctx context.Context, dispatchID int64, items []entity.DispatchItem) error
	Get(ctx context.Context, id int64) (*entity.Dispatch, error)
	ListItems(ctx context.Context, dispatchID int64) ([]entity.DispatchItem, error)
	DeleteItems(ctx context.Context, dispatchID int64) error
	UpdateHeader(ctx context.Context, d *entity.Dispatch) error
	// UpdateStatus cambia solo el estado (aprobación); no toca el ledger.
	UpdateStatus(ctx context.Context, id int64, status, approvedBy string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, site *domain.Site) ([]entity.Dispatch, error)
}

// RecoveryRepository persistencia de recuperaciones.
type RecoveryRepository interface {
	Insert(ctx context.Context, r *entity.Recovery) (int64, error)
	InsertItems(ctx context.Context, recoveryID int64, items []entity.RecoveryItem) error
	Get(ctx context.Context, id int64) (*entity.Recovery, error)
	ListItems(ctx context.Context, recoveryID int64) ([]entity.RecoveryItem, error)
	// List filtra por destino cuando site no es nil: recuperaciones con al
	// menos una línea hacia ese sitio o hacia Desecho.
	List(ctx context.Context, site *domain.Site) ([]entity.Recovery, error)
}
