package db

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
)

func TestNewDialect(t *testing.T) {
	pg, err := NewDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, "pgx", pg.DriverName())

	pg2, err := NewDialect("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, pg.Name(), pg2.Name())

	my, err := NewDialect("mysql")
	require.NoError(t, err)
	assert.Equal(t, "mysql", my.DriverName())

	_, err = NewDialect("oracle")
	assert.Error(t, err, "backend no soportado debe rechazarse en el arranque")
}

func TestRebind_PreservaOrdenYCantidad(t *testing.T) {
	pg, _ := NewDialect("postgres")
	my, _ := NewDialect("mysql")

	q := `INSERT INTO t (a, b, c) VALUES (?, ?, ?)`
	assert.Equal(t, `INSERT INTO t (a, b, c) VALUES ($1, $2, $3)`, pg.Rebind(q))
	assert.Equal(t, q, my.Rebind(q), "MySQL usa ? de forma nativa")
}

func TestUpsertIncrement_ClampaYDerivaStatus(t *testing.T) {
	// Ambos dialectos deben clampar los pools en cero y recalcular el status en
	// la misma sentencia; ningún valor calculado viaja desde fuera de la tx.
	for _, name := range []string{"postgres", "mysql"} {
		d, err := NewDialect(name)
		require.NoError(t, err)
		q := d.UpsertStockIncrement()
		assert.Contains(t, q, "GREATEST(0,", "%s: la suma debe clampar en cero", name)
		assert.Contains(t, q, "VALUES (?, ?, ?, GREATEST(0, ?), GREATEST(0, ?), 0, ?, ?)",
			"%s: la rama de inserción también clampa los pools", name)
		assert.Contains(t, q, "'Agotado'", name)
		assert.Contains(t, q, "'Reordenar'", name)
		assert.Contains(t, q, "'En Stock'", name)
	}

	// El CASE del status no puede leer un pool ya reasignado: MySQL no fija el
	// orden de evaluación de las asignaciones, así que el status se recalcula
	// siempre desde los valores previos más los deltas.
	my, _ := NewDialect("mysql")
	q := my.UpsertStockIncrement()
	assert.NotContains(t, q, "WHEN stock_new + stock_recovered",
		"el status no debe sumar columnas ya asignadas")
	assert.Contains(t, q, "GREATEST(0, stock_new + VALUES(stock_new))")
	assert.Contains(t, q, "GREATEST(0, stock_recovered + VALUES(stock_recovered))")
}

func TestClassifyErr_Postgres(t *testing.T) {
	d, _ := NewDialect("postgres")

	err := classifyErr(d, "insert", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, err, domain.ErrConstraint, "clave duplicada es violación de restricción")

	err = classifyErr(d, "insert", &pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, err, domain.ErrConstraint, "FK rota es violación de restricción")

	err = classifyErr(d, "query", &pgconn.PgError{Code: "08006"})
	assert.ErrorIs(t, err, domain.ErrConnection, "clase 08 es error de conexión")

	base := errors.New("syntax error")
	err = classifyErr(d, "query", base)
	assert.ErrorIs(t, err, base, "otros errores se devuelven envueltos, no absorbidos")
	assert.NotErrorIs(t, err, domain.ErrConstraint)
	assert.NotErrorIs(t, err, domain.ErrConnection)
}

func TestClassifyErr_MySQL(t *testing.T) {
	d, _ := NewDialect("mysql")

	err := classifyErr(d, "insert", &mysql.MySQLError{Number: 1062})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	for _, code := range []uint16{1451, 1452} {
		err = classifyErr(d, "delete", &mysql.MySQLError{Number: code})
		assert.ErrorIs(t, err, domain.ErrConstraint, "código %d", code)
	}

	err = classifyErr(d, "query", mysql.ErrInvalidConn)
	assert.ErrorIs(t, err, domain.ErrConnection)

	var netErr net.Error = &net.OpError{Op: "dial", Err: errors.New("refused")}
	err = classifyErr(d, "query", fmt.Errorf("exec: %w", netErr))
	assert.ErrorIs(t, err, domain.ErrConnection, "fallos de red son errores de conexión")
}

func TestClassifyErr_Nil(t *testing.T) {
	d, _ := NewDialect("postgres")
	assert.NoError(t, classifyErr(d, "op", nil))
}
