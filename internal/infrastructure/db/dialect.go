package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// Dialect encapsula las diferencias entre PostgreSQL y MySQL: estilo de
// placeholders, recuperación del ID generado, sintaxis de upsert y
// clasificación de errores del driver. Se selecciona una sola vez en el
// arranque; ningún call site fuera de este paquete sabe qué backend está
// activo.
type Dialect interface {
	Name() string
	DriverName() string
	// Rebind traduce los placeholders posicionales ? a la forma nativa del
	// dialecto ($1, $2, ... en PostgreSQL; identidad en MySQL), preservando
	// orden y cantidad de parámetros.
	Rebind(query string) string
	// InsertReturningID ejecuta un INSERT de cabecera (escrito sin cláusula
	// RETURNING) y devuelve el identificador generado, normalizado entre
	// RETURNING id y LastInsertId.
	InsertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error)
	// UpsertStockIncrement SQL del upsert aditivo de stock: crea la fila si no
	// existe o suma los deltas a los pools (clampados en 0) en un solo round
	// trip, recalculando el status en la misma sentencia.
	// Parámetros: code, description, size, newDelta, recoveredDelta, site, status.
	UpsertStockIncrement() string
	// UpsertStockSave SQL del upsert de valores completos (solo bajo bloqueo de
	// fila). Parámetros: code, description, size, stockNew, stockRecovered,
	// stockMin, site, status.
	UpsertStockSave() string

	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
	IsConnectionError(err error) bool
}

// NewDialect devuelve la estrategia del backend indicado ("postgres" o "mysql").
func NewDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	}
	return nil, fmt.Errorf("driver de base de datos no soportado: %q", name)
}

// ---------------------------------------------------------------------------
// PostgreSQL
// ---------------------------------------------------------------------------

type postgresDialect struct{}

func (postgresDialect) Name() string       { return "postgres" }
func (postgresDialect) DriverName() string { return "pgx" }

func (postgresDialect) Rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}

func (d postgresDialect) InsertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	var id int64
	row := q.QueryRowxContext(ctx, d.Rebind(query+" RETURNING id"), args...)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (postgresDialect) UpsertStockIncrement() string {
	return `
		INSERT INTO inventory_items (code, description, size, stock_new, stock_recovered, stock_min, site, status)
		VALUES (?, ?, ?, GREATEST(0, ?), GREATEST(0, ?), 0, ?, ?)
		ON CONFLICT (code, site) DO UPDATE SET
			stock_new = GREATEST(0, inventory_items.stock_new + EXCLUDED.stock_new),
			stock_recovered = GREATEST(0, inventory_items.stock_recovered + EXCLUDED.stock_recovered),
			description = EXCLUDED.description,
			size = COALESCE(EXCLUDED.size, inventory_items.size),
			status = CASE
				WHEN GREATEST(0, inventory_items.stock_new + EXCLUDED.stock_new)
				   + GREATEST(0, inventory_items.stock_recovered + EXCLUDED.stock_recovered) = 0 THEN 'Agotado'
				WHEN GREATEST(0, inventory_items.stock_new + EXCLUDED.stock_new)
				   + GREATEST(0, inventory_items.stock_recovered + EXCLUDED.stock_recovered) <= inventory_items.stock_min THEN 'Reordenar'
				ELSE 'En Stock'
			END,
			updated_at = CURRENT_TIMESTAMP`
}

func (postgresDialect) UpsertStockSave() string {
	return `
		INSERT INTO inventory_items (code, description, size, stock_new, stock_recovered, stock_min, site, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (code, site) DO UPDATE SET
			description = EXCLUDED.description,
			size = EXCLUDED.size,
			stock_new = EXCLUDED.stock_new,
			stock_recovered = EXCLUDED.stock_recovered,
			stock_min = EXCLUDED.stock_min,
			status = EXCLUDED.status,
			updated_at = CURRENT_TIMESTAMP`
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

func (postgresDialect) IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503" // foreign_key_violation
}

func (postgresDialect) IsConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Clase 08: connection exception
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return isNetworkError(err)
}

// ---------------------------------------------------------------------------
// MySQL
// ---------------------------------------------------------------------------

type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return "mysql" }
func (mysqlDialect) DriverName() string { return "mysql" }

func (mysqlDialect) Rebind(query string) string {
	// MySQL usa ? de forma nativa
	return query
}

func (d mysqlDialect) InsertReturningID(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// El CASE del status recalcula los pools desde los valores previos más los
// deltas; MySQL no garantiza el orden de evaluación de las asignaciones de
// ON DUPLICATE KEY UPDATE, así que el status va primero y no depende de que
// los pools ya estén asignados.
func (mysqlDialect) UpsertStockIncrement() string {
	return `
		INSERT INTO inventory_items (code, description, size, stock_new, stock_recovered, stock_min, site, status)
		VALUES (?, ?, ?, GREATEST(0, ?), GREATEST(0, ?), 0, ?, ?)
		ON DUPLICATE KEY UPDATE
			status = CASE
				WHEN GREATEST(0, stock_new + VALUES(stock_new))
				   + GREATEST(0, stock_recovered + VALUES(stock_recovered)) = 0 THEN 'Agotado'
				WHEN GREATEST(0, stock_new + VALUES(stock_new))
				   + GREATEST(0, stock_recovered + VALUES(stock_recovered)) <= stock_min THEN 'Reordenar'
				ELSE 'En Stock'
			END,
			stock_new = GREATEST(0, stock_new + VALUES(stock_new)),
			stock_recovered = GREATEST(0, stock_recovered + VALUES(stock_recovered)),
			description = VALUES(description),
			size = COALESCE(VALUES(size), size),
			updated_at = CURRENT_TIMESTAMP`
}

func (mysqlDialect) UpsertStockSave() string {
	return `
		INSERT INTO inventory_items (code, description, size, stock_new, stock_recovered, stock_min, site, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			description = VALUES(description),
			size = VALUES(size),
			stock_new = VALUES(stock_new),
			stock_recovered = VALUES(stock_recovered),
			stock_min = VALUES(stock_min),
			status = VALUES(status),
			updated_at = CURRENT_TIMESTAMP`
}

func (mysqlDialect) IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062 // ER_DUP_ENTRY
}

func (mysqlDialect) IsForeignKeyViolation(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	return myErr.Number == 1451 || myErr.Number == 1452 // ER_ROW_IS_REFERENCED_2 / ER_NO_REFERENCED_ROW_2
}

func (mysqlDialect) IsConnectionError(err error) bool {
	if errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	return isNetworkError(err)
}

func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
