package stock

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache guarda JSON por chave e conta as invalidações.
type mapCache struct {
	version int
	data    map[string][]byte
	loads   int
	bumps   int
}

func newMapCache() *mapCache { return &mapCache{version: 1, data: map[string][]byte{}} }

func (c *mapCache) BuildKey(_ context.Context, parts ...string) (string, error) {
	key := ""
	for _, p := range parts {
		key += p + ":"
	}
	return key + string(rune('0'+c.version)), nil
}

func (c *mapCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if raw, ok := c.data[key]; ok {
		return json.Unmarshal(raw, dest)
	}
	c.loads++
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) Bump(context.Context) error {
	c.version++
	c.bumps++
	return nil
}

var fixedNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T) (*UseCase, *memory.Store, *mapCache) {
	t.Helper()
	store := memory.NewStore()
	store.SeedBasics()
	cache := newMapCache()
	uc := NewUseCase(memory.NewTxRunner(store), store.Stock(), cache, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })
	return uc, store, cache
}

func qtyOf(t *testing.T, s *memory.Store, productID, locationID string) string {
	t.Helper()
	q, ok := s.StockOf(productID, locationID)
	require.True(t, ok, "linha de estoque deveria existir")
	return q.String()
}

func TestEntry_CriaLinhaQuandoAusente(t *testing.T) {
	uc, store, cache := newTestUseCase(t)

	out, err := uc.Entry(context.Background(), dto.StockEntryRequest{
		ProductID: memory.ProductCano, LocationID: memory.LocationLoja, Quantity: "12.5",
	})
	require.NoError(t, err)
	assert.Equal(t, "12.5", out.Quantity)
	assert.Equal(t, "12.5", qtyOf(t, store, memory.ProductCano, memory.LocationLoja))
	assert.Equal(t, 1, cache.bumps)
}

func TestEntry_SomaAoSaldoExistente(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "3")

	_, err := uc.Entry(context.Background(), dto.StockEntryRequest{
		ProductID: memory.ProductCano, LocationID: memory.LocationLoja, Quantity: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "5", qtyOf(t, store, memory.ProductCano, memory.LocationLoja))
}

func TestEntry_QuantidadeInvalida(t *testing.T) {
	uc, store, _ := newTestUseCase(t)

	for _, q := range []string{"", "abc", "0", "-1", "0.00001", "1e3", "1e3000000", "100000000000"} {
		_, err := uc.Entry(context.Background(), dto.StockEntryRequest{
			ProductID: memory.ProductCano, LocationID: memory.LocationLoja, Quantity: q,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade %q", q)
	}
	_, ok := store.StockOf(memory.ProductCano, memory.LocationLoja)
	assert.False(t, ok)
}

func approvedCompra() entity.PurchaseOrder {
	return entity.PurchaseOrder{
		ID: "PO1", Code: "123456", ProductID: memory.ProductCano, SupplierID: memory.SupplierAcme,
		LocationID: memory.LocationLoja, Quantity: decimal.NewFromInt(10), Unit: entity.UnitMeters,
		Status: entity.PurchaseApproved,
	}
}

func TestEntry_ComCompraAprovadaMarcaEntregue(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.PutPurchaseOrder(approvedCompra())

	_, err := uc.Entry(context.Background(), dto.StockEntryRequest{
		ProductID: memory.ProductCano, LocationID: memory.LocationLoja, Quantity: "10", CompraID: "PO1",
	})
	require.NoError(t, err)

	po, err := store.PurchaseOrders().GetByID(context.Background(), "PO1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseDelivered, po.Status)
	assert.Equal(t, fixedNow, po.UpdatedAt)
	assert.Equal(t, "10", qtyOf(t, store, memory.ProductCano, memory.LocationLoja))
}

func TestEntry_ComCompraPendenteFalhaSemMutacao(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	po := approvedCompra()
	po.Status = entity.PurchasePending
	store.PutPurchaseOrder(po)

	_, err := uc.Entry(context.Background(), dto.StockEntryRequest{
		ProductID: memory.ProductCano, LocationID: memory.LocationLoja, Quantity: "10", CompraID: "PO1",
	})
	require.ErrorIs(t, err, domain.ErrInvalidState)

	_, ok := store.StockOf(memory.ProductCano, memory.LocationLoja)
	assert.False(t, ok)
	got, _ := store.PurchaseOrders().GetByID(context.Background(), "PO1")
	assert.Equal(t, entity.PurchasePending, got.Status)
}

func TestEntry_CompraDeOutroLocal(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.PutPurchaseOrder(approvedCompra())

	_, err := uc.Entry(context.Background(), dto.StockEntryRequest{
		ProductID: memory.ProductCano, LocationID: memory.LocationDeposito, Quantity: "10", CompraID: "PO1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEntry_CompraInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Entry(context.Background(), dto.StockEntryRequest{
		ProductID: memory.ProductCano, LocationID: memory.LocationLoja, Quantity: "1", CompraID: "nao-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSet_GravaValorAbsoluto(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "40")

	out, err := uc.Set(context.Background(), dto.SetStockRequest{
		ProductID: memory.ProductCano, LocationID: memory.LocationLoja, Quantity: "7,25",
	})
	require.NoError(t, err)
	assert.Equal(t, "7.25", out.Quantity)
	assert.Equal(t, "7.25", qtyOf(t, store, memory.ProductCano, memory.LocationLoja))
}

func TestSet_RejeitaNegativo(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Set(context.Background(), dto.SetStockRequest{
		ProductID: memory.ProductCano, LocationID: memory.LocationLoja, Quantity: "-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "4")
	s, _ := store.Stock().Get(context.Background(), memory.ProductCano, memory.LocationLoja)

	require.NoError(t, uc.Delete(context.Background(), s.ID))
	_, ok := store.StockOf(memory.ProductCano, memory.LocationLoja)
	assert.False(t, ok)

	assert.ErrorIs(t, uc.Delete(context.Background(), s.ID), domain.ErrNotFound)
}

func TestByLocation_CodigoDeExibicao(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "4")
	store.PutStock(memory.ProductJoelho, memory.LocationLoja, "1")

	list, err := uc.ByLocation(context.Background(), memory.LocationLoja)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "10 - 20 - 001", list[0].ProductCode)
	assert.Equal(t, "002", list[1].ProductCode)
}

func TestForPDV_SoSaldoPositivoComPreco(t *testing.T) {
	uc, store, cache := newTestUseCase(t)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "4")
	store.PutStock(memory.ProductJoelho, memory.LocationLoja, "0")
	require.NoError(t, store.Pricing().Create(context.Background(), &entity.Pricing{
		ID: "PR1", ProductID: memory.ProductCano, LocationID: memory.LocationLoja,
		Price: decimal.RequireFromString("12.5"), SaleUnit: entity.UnitMeters,
	}))

	items, err := uc.ForPDV(context.Background(), memory.LocationLoja)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Price)
	assert.Equal(t, "12.50", *items[0].Price)

	_, err = uc.ForPDV(context.Background(), memory.LocationLoja)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.loads, "segunda leitura vem do cache")

	_, err = uc.Entry(context.Background(), dto.StockEntryRequest{
		ProductID: memory.ProductJoelho, LocationID: memory.LocationLoja, Quantity: "3",
	})
	require.NoError(t, err)
	items, err = uc.ForPDV(context.Background(), memory.LocationLoja)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, cache.loads)
}
