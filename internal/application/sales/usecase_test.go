package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T) (*UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedBasics()
	uc := NewUseCase(memory.NewTxRunner(store), store.Sales(), nil, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })
	return uc, store
}

func line(productID, qty, price, subtotal string) dto.LineRequest {
	return dto.LineRequest{ProductID: productID, Quantity: qty, Unit: entity.UnitPiece, UnitPrice: price, Subtotal: subtotal}
}

func stockOf(t *testing.T, store *memory.Store, productID string) string {
	t.Helper()
	q, ok := store.StockOf(productID, memory.LocationLoja)
	require.True(t, ok)
	return q.String()
}

func TestCheckout_BaixaEstoqueEGravaVenda(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "10")
	store.PutStock(memory.ProductJoelho, memory.LocationLoja, "4")

	out, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		LocationID: memory.LocationLoja,
		Items: []dto.LineRequest{
			line(memory.ProductCano, "2.5", "8.00", "20.00"),
			line(memory.ProductJoelho, "4", "3.10", "12.40"),
		},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^[1-9][0-9]{5}$`, out.Codigo)

	assert.Equal(t, "7.5", stockOf(t, store, memory.ProductCano))
	assert.Equal(t, "0", stockOf(t, store, memory.ProductJoelho))

	got, err := uc.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "32.40", got.Total)
	assert.Equal(t, entity.SaleFinalized, got.Status)
	assert.Empty(t, got.ClientID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "2.5", got.Items[0].Quantity)
	assert.Equal(t, "8.00", got.Items[0].UnitPrice)
}

func TestCheckout_FaltaEmUmItemNaoGravaNada(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "10")
	store.PutStock(memory.ProductJoelho, memory.LocationLoja, "1")

	_, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		LocationID: memory.LocationLoja,
		Items: []dto.LineRequest{
			line(memory.ProductCano, "2", "8.00", "16.00"),
			line(memory.ProductJoelho, "2", "3.10", "6.20"),
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var short *domain.StockShortage
	require.True(t, errors.As(err, &short))
	assert.Equal(t, memory.ProductJoelho, short.ProductID)
	assert.Equal(t, "1", short.Available)

	assert.Equal(t, "10", stockOf(t, store, memory.ProductCano))
	assert.Equal(t, 0, store.SaleCount())
}

func TestCheckout_SomaLinhasDoMesmoProduto(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "3")

	_, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		LocationID: memory.LocationLoja,
		Items: []dto.LineRequest{
			line(memory.ProductCano, "2", "1.00", "2.00"),
			line(memory.ProductCano, "2", "1.00", "2.00"),
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "3", stockOf(t, store, memory.ProductCano))
}

func TestCheckout_SemLinhaDeEstoque(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		LocationID: memory.LocationLoja,
		Items:      []dto.LineRequest{line(memory.ProductCano, "1", "1.00", "1.00")},
	})
	var short *domain.StockShortage
	require.True(t, errors.As(err, &short))
	assert.Empty(t, short.Available)
}

func TestCheckout_RepeteEmConflitoDeCodigo(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "5")
	store.CodeConflicts = 1

	_, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		LocationID: memory.LocationLoja,
		Items:      []dto.LineRequest{line(memory.ProductCano, "1", "1.00", "1.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, "4", stockOf(t, store, memory.ProductCano), "baixa aplicada uma única vez")
	assert.Equal(t, 1, store.SaleCount())
}

func TestCheckout_Validacao(t *testing.T) {
	uc, _ := newTestUseCase(t)

	cases := map[string]dto.CheckoutRequest{
		"sem local":            {Items: []dto.LineRequest{line(memory.ProductCano, "1", "1", "1")}},
		"sem itens":            {LocationID: memory.LocationLoja},
		"qtd zero":             {LocationID: memory.LocationLoja, Items: []dto.LineRequest{line(memory.ProductCano, "0", "1", "1")}},
		"preço":                {LocationID: memory.LocationLoja, Items: []dto.LineRequest{line(memory.ProductCano, "1", "x", "1")}},
		"qtd arredonda a zero": {LocationID: memory.LocationLoja, Items: []dto.LineRequest{line(memory.ProductCano, "0.00001", "1", "1")}},
		"notação científica":   {LocationID: memory.LocationLoja, Items: []dto.LineRequest{line(memory.ProductCano, "1e2", "1", "1")}},
		"total excede coluna": {LocationID: memory.LocationLoja, Items: []dto.LineRequest{
			line(memory.ProductCano, "1", "9999999999999", "9999999999999"),
			line(memory.ProductJoelho, "1", "9999999999999", "9999999999999"),
		}},
	}
	for name, in := range cases {
		_, err := uc.Checkout(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestList_FiltraPorLocal(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "5")

	_, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		LocationID: memory.LocationLoja,
		Items:      []dto.LineRequest{line(memory.ProductCano, "1", "1.00", "1.00")},
	})
	require.NoError(t, err)

	list, err := uc.List(context.Background(), dto.VendaListRequest{LocationID: memory.LocationLoja})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Loja Centro", list[0].LocationName)

	list, err = uc.List(context.Background(), dto.VendaListRequest{LocationID: memory.LocationDeposito})
	require.NoError(t, err)
	assert.Empty(t, list)
}
