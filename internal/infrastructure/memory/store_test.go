package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPair(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "P1", Code: "001", Name: "Cano", Unit: entity.UnitPiece}))
	require.NoError(t, s.Locations().Create(ctx, &entity.Location{ID: "L1", Name: "Loja"}))
}

func TestAdjust_DescontoSemLinhaNaoCria(t *testing.T) {
	s := NewStore()
	seedPair(t, s)
	ctx := context.Background()

	qty, err := s.Stock().Adjust(ctx, "P1", "L1", decimal.NewFromInt(-2))
	require.NoError(t, err)
	assert.True(t, qty.IsZero())

	got, err := s.Stock().Get(ctx, "P1", "L1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdjust_SomaELimitaEmZero(t *testing.T) {
	s := NewStore()
	seedPair(t, s)
	ctx := context.Background()

	_, err := s.Stock().Adjust(ctx, "P1", "L1", decimal.NewFromInt(3))
	require.NoError(t, err)
	qty, err := s.Stock().Adjust(ctx, "P1", "L1", decimal.NewFromInt(-5))
	require.NoError(t, err)
	assert.True(t, qty.IsZero())
}

func TestTxRunner_DescartaEmErro(t *testing.T) {
	s := NewStore()
	seedPair(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := NewTxRunner(s).Run(ctx, func(r repository.TxRepos) error {
		if _, err := r.Stock.Adjust(ctx, "P1", "L1", decimal.NewFromInt(10)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := s.Stock().Get(ctx, "P1", "L1")
	assert.Nil(t, got)
	assert.Equal(t, 0, s.Commits)
}

func TestTxRunner_ConfirmaEmSucesso(t *testing.T) {
	s := NewStore()
	seedPair(t, s)
	ctx := context.Background()

	err := NewTxRunner(s).Run(ctx, func(r repository.TxRepos) error {
		_, err := r.Stock.Adjust(ctx, "P1", "L1", decimal.NewFromInt(10))
		return err
	})
	require.NoError(t, err)

	got, _ := s.Stock().Get(ctx, "P1", "L1")
	require.NotNil(t, got)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 1, s.Commits)
}

func TestPricing_ParDuplicado(t *testing.T) {
	s := NewStore()
	seedPair(t, s)
	ctx := context.Background()
	now := time.Now()

	p := &entity.Pricing{ID: "X1", ProductID: "P1", LocationID: "L1", Price: decimal.NewFromInt(10), SaleUnit: "un", CreatedAt: now}
	require.NoError(t, s.Pricing().Create(ctx, p))
	err := s.Pricing().Create(ctx, &entity.Pricing{ID: "X2", ProductID: "P1", LocationID: "L1", Price: decimal.NewFromInt(12)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
