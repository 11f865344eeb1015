package purchasing

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/codegen"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type savedFile struct {
	dir, name string
	data      []byte
}

type fakeFiles struct{ saved []savedFile }

func (f *fakeFiles) Save(_ context.Context, dir, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.saved = append(f.saved, savedFile{dir: dir, name: name, data: data})
	return "/uploads/" + dir + "/" + name, nil
}

var fixedNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T) (*UseCase, *memory.Store, *fakeFiles) {
	t.Helper()
	store := memory.NewStore()
	store.SeedBasics()
	files := &fakeFiles{}
	uc := NewUseCase(memory.NewTxRunner(store), store.PurchaseOrders(), files, nil, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })
	return uc, store, files
}

func validRequest() dto.CompraRequest {
	return dto.CompraRequest{
		ProductID:  memory.ProductCano,
		SupplierID: memory.SupplierAcme,
		LocationID: memory.LocationLoja,
		Quantity:   "25.5",
		Unit:       entity.UnitMeters,
	}
}

func putCompra(store *memory.Store, id, status string) {
	store.PutPurchaseOrder(entity.PurchaseOrder{
		ID: id, Code: "5000" + id[len(id)-2:], ProductID: memory.ProductCano, SupplierID: memory.SupplierAcme,
		LocationID: memory.LocationLoja, Quantity: decimal.RequireFromString("25.5"), Unit: entity.UnitMeters,
		Status: status, CreatedAt: fixedNow, UpdatedAt: fixedNow,
	})
}

func statusOf(t *testing.T, store *memory.Store, id string) string {
	t.Helper()
	po, err := store.PurchaseOrders().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, po)
	return po.Status
}

func TestCreate_GeraCodigoPendente(t *testing.T) {
	uc, store, _ := newTestUseCase(t)

	out, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^[1-9][0-9]{5}$`, out.Codigo)

	got, err := uc.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchasePending, got.Status)
	assert.Equal(t, "25.5", got.Quantity)
	assert.Equal(t, "Acme Materiais", got.SupplierName)
	assert.Equal(t, "10 - 20 - 001", got.ProductCode)
	assert.Equal(t, 0, store.Commits, "criação não usa transação")
}

func TestCreate_RepeteQuandoCodigoColide(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.CodeConflicts = 2

	out, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, out.Codigo)
	assert.Equal(t, 0, store.CodeConflicts)
}

func TestCreate_DesisteAposTresConflitos(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	store.CodeConflicts = codegen.InsertRetries

	_, err := uc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrCodeConflict)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	bad := validRequest()
	bad.Quantity = "abc"
	_, err := uc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = validRequest()
	bad.Unit = "kg"
	_, err = uc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApprove_CreditaEstoque(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	putCompra(store, "PO01", entity.PurchasePending)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "4.5")

	require.NoError(t, uc.Approve(context.Background(), "PO01"))

	assert.Equal(t, entity.PurchaseApproved, statusOf(t, store, "PO01"))
	q, ok := store.StockOf(memory.ProductCano, memory.LocationLoja)
	require.True(t, ok)
	assert.Equal(t, "30", q.String())
}

func TestApprove_CriaLinhaDeEstoque(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	putCompra(store, "PO01", entity.PurchasePending)

	require.NoError(t, uc.Approve(context.Background(), "PO01"))

	q, ok := store.StockOf(memory.ProductCano, memory.LocationLoja)
	require.True(t, ok)
	assert.Equal(t, "25.5", q.String())
}

func TestApprove_SoPendente(t *testing.T) {
	for _, status := range []string{entity.PurchaseApproved, entity.PurchaseRejected, entity.PurchaseDelivered} {
		t.Run(status, func(t *testing.T) {
			uc, store, _ := newTestUseCase(t)
			putCompra(store, "PO01", status)

			err := uc.Approve(context.Background(), "PO01")
			require.ErrorIs(t, err, domain.ErrInvalidState)

			assert.Equal(t, status, statusOf(t, store, "PO01"))
			_, ok := store.StockOf(memory.ProductCano, memory.LocationLoja)
			assert.False(t, ok, "estoque não pode ser tocado")
		})
	}
}

func TestApprove_NaoEncontrada(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	assert.ErrorIs(t, uc.Approve(context.Background(), "nada"), domain.ErrNotFound)
}

func TestReject_NaoMexeNoEstoque(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	putCompra(store, "PO01", entity.PurchasePending)
	store.PutStock(memory.ProductCano, memory.LocationLoja, "2")

	require.NoError(t, uc.Reject(context.Background(), "PO01"))
	assert.Equal(t, entity.PurchaseRejected, statusOf(t, store, "PO01"))
	q, _ := store.StockOf(memory.ProductCano, memory.LocationLoja)
	assert.Equal(t, "2", q.String())

	assert.ErrorIs(t, uc.Reject(context.Background(), "PO01"), domain.ErrInvalidState)
}

func TestUpdate_SoPendente(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	putCompra(store, "PO01", entity.PurchasePending)
	putCompra(store, "PO02", entity.PurchaseApproved)

	req := validRequest()
	req.Quantity = "3"
	req.LocationID = memory.LocationDeposito
	out, err := uc.Update(context.Background(), "PO01", req)
	require.NoError(t, err)
	assert.Equal(t, "3", out.Quantity)
	assert.Equal(t, "Depósito", out.LocationName)

	_, err = uc.Update(context.Background(), "PO02", req)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDelete_RespeitaStatus(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	putCompra(store, "PO01", entity.PurchasePending)
	putCompra(store, "PO02", entity.PurchaseRejected)
	putCompra(store, "PO03", entity.PurchaseApproved)

	require.NoError(t, uc.Delete(context.Background(), "PO01"))
	require.NoError(t, uc.Delete(context.Background(), "PO02"))
	assert.ErrorIs(t, uc.Delete(context.Background(), "PO03"), domain.ErrInvalidState)

	list, err := uc.List(context.Background(), dto.CompraListRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PO03", list[0].ID)
}

func TestList_FiltraPorStatus(t *testing.T) {
	uc, store, _ := newTestUseCase(t)
	putCompra(store, "PO01", entity.PurchasePending)
	putCompra(store, "PO02", entity.PurchaseRejected)

	list, err := uc.List(context.Background(), dto.CompraListRequest{Status: entity.PurchaseRejected})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PO02", list[0].ID)
}

func TestUploadNota(t *testing.T) {
	uc, store, files := newTestUseCase(t)
	putCompra(store, "PO01", entity.PurchaseApproved)

	out, err := uc.UploadNota(context.Background(), "PO01", "NF 123.PDF", bytes.NewReader([]byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.True(t, out.HasInvoice)
	assert.Equal(t, "/uploads/compras/PO01.pdf", out.NotaFileURL)
	require.Len(t, files.saved, 1)
	assert.Equal(t, "compras", files.saved[0].dir)
	assert.Equal(t, "%PDF-1.4", string(files.saved[0].data))
}

func TestUploadNota_ExtensaoRecusada(t *testing.T) {
	uc, store, files := newTestUseCase(t)
	putCompra(store, "PO01", entity.PurchasePending)

	_, err := uc.UploadNota(context.Background(), "PO01", "nota.exe", strings.NewReader("x"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Use PDF ou imagem")
	assert.Empty(t, files.saved)
}
