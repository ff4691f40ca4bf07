package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	// Drivers registrados por efecto: pgx vía database/sql y go-sql-driver.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/pkg/config"
)

// DB agrupa el pool sqlx con la estrategia de dialecto activa. Es la única
// pieza del sistema que conoce el backend concreto; el resto consume
// repositorios y el TxRunner.
type DB struct {
	Pool    *sqlx.DB
	dialect Dialect
}

// Connect abre el pool contra el backend configurado, ajusta límites de
// conexión y verifica con ping. El ciclo de vida (Connect/Close) lo posee el
// bootstrap del proceso, no un singleton de primer uso.
func Connect(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	name := cfg.Driver
	if cfg.IsPostgres() {
		name = "postgres"
	}
	dialect, err := NewDialect(name)
	if err != nil {
		return nil, err
	}

	pool, err := sqlx.Open(dialect.DriverName(), cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("abrir pool %s: %w", dialect.Name(), err)
	}
	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(time.Hour)
	pool.SetConnMaxIdleTime(30 * time.Minute)

	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", domain.ErrConnection, dialect.Name(), err)
	}
	return &DB{Pool: pool, dialect: dialect}, nil
}

// Dialect expone la estrategia activa (para construir repositorios).
func (d *DB) Dialect() Dialect { return d.dialect }

// Close cierra el pool.
func (d *DB) Close() error { return d.Pool.Close() }

// classifyErr traduce errores del driver a la taxonomía de dominio:
// violaciones de restricción -> ErrConstraint, fallos de conexión ->
// ErrConnection. Cualquier otro error se devuelve envuelto con la operación.
func classifyErr(dialect Dialect, op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case dialect.IsUniqueViolation(err), dialect.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: %v", domain.ErrConstraint, op, err)
	case dialect.IsConnectionError(err), errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%w: %s: %v", domain.ErrConnection, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
