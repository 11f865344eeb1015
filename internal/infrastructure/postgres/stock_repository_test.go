package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

// recordingQuerier grava as instruções recebidas e devolve respostas fixas.
type recordingQuerier struct {
	sql     []string
	args    [][]any
	rowQty  decimal.Decimal
	rowErr  error
	execErr error
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), q.execErr
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("não usado")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return qtyRow{qty: q.rowQty, err: q.rowErr}
}

type qtyRow struct {
	qty decimal.Decimal
	err error
}

func (r qtyRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*decimal.Decimal) = r.qty
	return nil
}

func TestStockAdjust_PositivoFazUpsertAtomico(t *testing.T) {
	q := &recordingQuerier{rowQty: decimal.NewFromInt(7)}
	repo := NewStockRepository(q)

	qty, err := repo.Adjust(context.Background(), "P1", "L1", decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, "7", qty.String())

	require.Len(t, q.sql, 1)
	sql := q.sql[0]
	assert.Contains(t, sql, "INSERT INTO stock")
	assert.Contains(t, sql, "ON CONFLICT (product_id, location_id)")
	assert.Contains(t, sql, "GREATEST(stock.quantity + EXCLUDED.quantity, 0)")
	require.Len(t, q.args[0], 4)
	assert.Equal(t, "P1", q.args[0][1])
	assert.Equal(t, "L1", q.args[0][2])
	assert.Equal(t, "2", q.args[0][3].(decimal.Decimal).String())
}

func TestStockAdjust_NegativoSemLinhaNaoCria(t *testing.T) {
	q := &recordingQuerier{rowErr: pgx.ErrNoRows}
	repo := NewStockRepository(q)

	qty, err := repo.Adjust(context.Background(), "P1", "L1", decimal.NewFromInt(-3))
	require.NoError(t, err)
	assert.True(t, qty.IsZero())

	require.Len(t, q.sql, 1)
	sql := strings.TrimSpace(q.sql[0])
	assert.True(t, strings.HasPrefix(sql, "UPDATE stock"), sql)
	assert.NotContains(t, sql, "INSERT")
	assert.Contains(t, sql, "GREATEST(quantity + $3, 0)")
}

func TestStockAdjust_ProdutoInexistente(t *testing.T) {
	q := &recordingQuerier{rowErr: &pgconn.PgError{Code: "23503", ConstraintName: "stock_product_id_fkey"}}
	repo := NewStockRepository(q)

	_, err := repo.Adjust(context.Background(), "PX", "L1", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleCreate_CodigoDuplicadoViraConflito(t *testing.T) {
	q := &recordingQuerier{execErr: &pgconn.PgError{Code: "23505", ConstraintName: "vendas_codigo_key"}}
	repo := NewSaleRepository(q)

	err := repo.Create(context.Background(), &entity.Sale{ID: "V1", Code: "123456", LocationID: "L1"}, nil)
	assert.ErrorIs(t, err, domain.ErrCodeConflict)
	assert.Len(t, q.sql, 1, "itens não são inseridos após o conflito")
}
