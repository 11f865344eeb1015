package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// maxSerializationRetries limita as repetições após conflito de serialização.
const maxSerializationRetries = 3

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run executa fn numa transação REPEATABLE READ com repositórios atados à tx.
// Commit se fn retorna nil; Rollback caso contrário. Conflitos de serialização
// (40001) e deadlocks (40P01) repetem a transação inteira.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	var err error
	for attempt := 0; attempt < maxSerializationRetries; attempt++ {
		err = r.runOnce(ctx, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.TxRepos{
		Stock:          NewStockRepository(tx),
		PurchaseOrders: NewPurchaseOrderRepository(tx),
		Quotes:         NewQuoteRepository(tx),
		Sales:          NewSaleRepository(tx),
		Pricing:        NewPricingRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
