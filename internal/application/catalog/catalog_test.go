package catalog

import (
	"context"
	"testing"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *memory.Store {
	s := memory.NewStore()
	s.SeedBasics()
	return s
}

func TestProduct_CodigoDeExibicao(t *testing.T) {
	s := seeded()
	uc := NewProductUseCase(s.Products(), s.Groups(), s.Subgroups(), nil, zerolog.Nop())

	out, err := uc.Create(context.Background(), dto.ProductRequest{
		Code: "015", GroupID: "G1", SubgroupID: "SG1", Name: "Luva 25mm", Unit: entity.UnitPiece,
	})
	require.NoError(t, err)
	assert.Equal(t, "10 - 20 - 015", out.DisplayCode)

	out, err = uc.Create(context.Background(), dto.ProductRequest{Code: "016", Name: "Fita veda", Unit: entity.UnitPiece})
	require.NoError(t, err)
	assert.Equal(t, "016", out.DisplayCode)
}

func TestProduct_SubgrupoDeOutroGrupo(t *testing.T) {
	s := seeded()
	groups := NewGroupUseCase(s.Groups(), s.Subgroups())
	other, err := groups.CreateGroup(context.Background(), dto.GroupRequest{Code: "11", Name: "Elétrica"})
	require.NoError(t, err)

	uc := NewProductUseCase(s.Products(), s.Groups(), s.Subgroups(), nil, zerolog.Nop())
	_, err = uc.Create(context.Background(), dto.ProductRequest{
		Code: "1", GroupID: other.ID, SubgroupID: "SG1", Name: "Fio 2,5mm", Unit: entity.UnitMeters,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_Validacao(t *testing.T) {
	s := seeded()
	uc := NewProductUseCase(s.Products(), s.Groups(), s.Subgroups(), nil, zerolog.Nop())

	_, err := uc.Create(context.Background(), dto.ProductRequest{Code: "1", Name: "ab", Unit: entity.UnitPiece})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.ProductRequest{Code: "1", Name: "Produto", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.ProductRequest{Code: "1", GroupID: "nada", Name: "Produto", Unit: entity.UnitPiece})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_ListaComBusca(t *testing.T) {
	s := seeded()
	uc := NewProductUseCase(s.Products(), s.Groups(), s.Subgroups(), nil, zerolog.Nop())

	list, err := uc.List(context.Background(), dto.PageRequest{Search: "joelho"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, memory.ProductJoelho, list[0].ID)

	list, err = uc.List(context.Background(), dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, memory.ProductJoelho, list[0].ID)
}

func TestProduct_NaoExcluiComCompras(t *testing.T) {
	s := seeded()
	s.PutPurchaseOrder(entity.PurchaseOrder{ID: "PO1", Code: "100100", ProductID: memory.ProductCano, Status: entity.PurchasePending})
	uc := NewProductUseCase(s.Products(), s.Groups(), s.Subgroups(), nil, zerolog.Nop())

	assert.ErrorIs(t, uc.Delete(context.Background(), memory.ProductCano), domain.ErrInvalidState)
	assert.NoError(t, uc.Delete(context.Background(), memory.ProductJoelho))
	_, err := uc.GetByID(context.Background(), memory.ProductJoelho)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubgroups_PorGrupo(t *testing.T) {
	s := seeded()
	uc := NewGroupUseCase(s.Groups(), s.Subgroups())

	_, err := uc.CreateSubgroup(context.Background(), dto.GroupRequest{Code: "21", Name: "Tubos", GroupID: "G1"})
	require.NoError(t, err)
	_, err = uc.CreateSubgroup(context.Background(), dto.GroupRequest{Code: "22", Name: "Tubos"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListSubgroups(context.Background(), "G1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestParty_ClientesInativosFiltrados(t *testing.T) {
	s := seeded()
	uc := NewClientUseCase(s.Clients())
	inactive := false

	created, err := uc.Create(context.Background(), dto.PartyRequest{Name: "João", Email: "JOAO@x.com", State: "sp", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "joao@x.com", created.Email)
	assert.Equal(t, "SP", created.State)
	assert.False(t, created.IsActive)

	all, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	active, err := uc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, memory.ClientMaria, active[0].ID)
}

func TestParty_FornecedorNaoEncontrado(t *testing.T) {
	s := seeded()
	uc := NewSupplierUseCase(s.Suppliers())

	_, err := uc.Get(context.Background(), "nada")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "fornecedor")
}

func TestLocation_CRUD(t *testing.T) {
	s := seeded()
	uc := NewLocationUseCase(s.Locations())

	out, err := uc.Create(context.Background(), dto.LocationRequest{Name: "Filial Norte", City: "Recife"})
	require.NoError(t, err)
	upd, err := uc.Update(context.Background(), out.ID, dto.LocationRequest{Name: "Filial Norte 2", City: "Olinda"})
	require.NoError(t, err)
	assert.Equal(t, "Olinda", upd.City)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)

	require.NoError(t, uc.Delete(context.Background(), out.ID))
	_, err = uc.Update(context.Background(), out.ID, dto.LocationRequest{Name: "X1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPosition_CRUD(t *testing.T) {
	s := seeded()
	uc := NewPositionUseCase(s.Positions())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.PositionRequest{Name: "  Vendedor externo "})
	require.NoError(t, err)
	assert.Equal(t, "Vendedor externo", created.Name)

	_, err = uc.Create(ctx, dto.PositionRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.Update(ctx, created.ID, dto.PositionRequest{Name: "Gerente"})
	require.NoError(t, err)
	assert.Equal(t, "Gerente", updated.Name)

	_, err = uc.Update(ctx, "nao-existe", dto.PositionRequest{Name: "Gerente"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestPosition_ExclusaoDesfazAtribuicao(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	s.PutPosition("J1", "Caixa")
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "U1", Name: "Ana", Email: "ana@example.com", Role: entity.RoleSeller, IsActive: true}))
	require.NoError(t, s.Users().SetPosition(ctx, "U1", "J1"))

	u, err := s.Users().GetByID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "Caixa", u.PositionName)

	require.NoError(t, NewPositionUseCase(s.Positions()).Delete(ctx, "J1"))

	u, err = s.Users().GetByID(ctx, "U1")
	require.NoError(t, err)
	assert.Empty(t, u.PositionID)
}
