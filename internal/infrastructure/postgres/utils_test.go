package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-comercial/internal/domain"
)

func TestMapCodeInsertError(t *testing.T) {
	codeDup := &pgconn.PgError{Code: "23505", ConstraintName: "vendas_codigo_key"}
	err := mapCodeInsertError("insert venda", "vendas_codigo_key", codeDup)
	assert.ErrorIs(t, err, domain.ErrCodeConflict)

	otherDup := &pgconn.PgError{Code: "23505", ConstraintName: "vendas_pkey"}
	err = mapCodeInsertError("insert venda", "vendas_codigo_key", otherDup)
	assert.NotErrorIs(t, err, domain.ErrCodeConflict)
	assert.ErrorIs(t, err, otherDup)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "vendas_location_id_fkey"}
	err = mapCodeInsertError("insert venda", "vendas_codigo_key", fk)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	plain := errors.New("conexão perdida")
	err = mapCodeInsertError("insert venda", "vendas_codigo_key", plain)
	assert.ErrorIs(t, err, plain)
	assert.Contains(t, err.Error(), "insert venda")
}

func TestMapWriteError(t *testing.T) {
	err := mapWriteError("insert pricing", &pgconn.PgError{Code: "23505", ConstraintName: "pricing_product_location_key"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = mapWriteError("delete group", &pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	plain := errors.New("timeout")
	assert.ErrorIs(t, mapWriteError("x", plain), plain)
}

func TestMapCodeInsertError_Embrulhado(t *testing.T) {
	wrapped := errors.Join(errors.New("tx"), &pgconn.PgError{Code: "23505", ConstraintName: "orcamentos_codigo_key"})
	assert.ErrorIs(t, mapCodeInsertError("insert orcamento", "orcamentos_codigo_key", wrapped), domain.ErrCodeConflict)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", nullIfEmpty("x"))
}
