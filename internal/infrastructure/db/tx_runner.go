package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
)

// Verificación estática del contrato transaccional.
var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción del backend activo.
// El contrato es obligatorio: begin siempre, rollback en cualquier salida que
// no sea commit. El bloqueo de fila que la transacción mantiene hasta el
// commit serializa a los escritores concurrentes sobre un mismo (code, site).
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner sobre el pool.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repositorios atados a la tx y
// hace Commit o Rollback. Ningún estado parcial es observable si fn falla.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.db.Pool.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrConnection, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(r.newRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return classifyErr(r.db.dialect, "commit transaction", err)
	}
	return nil
}

// Repos devuelve el bundle de repositorios sobre el pool, fuera de toda
// transacción. Solo para lecturas; las mutaciones pasan por Run.
func (r *TxRunner) Repos() repository.Repos {
	return r.newRepos(r.db.Pool)
}

// newRepos construye el bundle de repositorios sobre el executor dado.
func (r *TxRunner) newRepos(q sqlx.ExtContext) repository.Repos {
	d := r.db.dialect
	return repository.Repos{
		Stock:      NewStockRepository(q, d),
		Entries:    NewEntryRepository(q, d),
		Dispatches: NewDispatchRepository(q, d),
		Recoveries: NewRecoveryRepository(q, d),
		Cyclic:     NewCyclicTaskRepository(q, d),
		Orders:     NewOrderRepository(q, d),
		Employees:  NewEmployeeRepository(q, d),
	}
}
