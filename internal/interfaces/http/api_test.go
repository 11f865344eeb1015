package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erp-comercial/internal/application/auth"
	"github.com/jhoicas/erp-comercial/internal/application/catalog"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/application/pricing"
	"github.com/jhoicas/erp-comercial/internal/application/purchasing"
	"github.com/jhoicas/erp-comercial/internal/application/quotes"
	"github.com/jhoicas/erp-comercial/internal/application/sales"
	"github.com/jhoicas/erp-comercial/internal/application/stock"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/memory"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/erp-comercial/internal/interfaces/http"
)

const (
	adminEmail  = "admin@example.com"
	sellerEmail = "vendas@example.com"
	password    = "senha-forte-123"
)

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields"`
}

type apiFixture struct {
	app     *fiber.App
	store   *memory.Store
	invites *recordingInviter
	admin   string
	seller  string
}

type recordingInviter struct{ sent []ports.UserInvite }

func (r *recordingInviter) EnqueueUserInvite(_ context.Context, inv ports.UserInvite) error {
	r.sent = append(r.sent, inv)
	return nil
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	store := memory.NewStore()
	store.SeedBasics()
	tx := memory.NewTxRunner(store)

	invites := &recordingInviter{}
	authUC := auth.NewAuthUseCase(store.Users(), store.Positions(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}).
		WithBcryptCost(bcrypt.MinCost).
		WithInviter(invites, log)
	_, err := authUC.EnsureAdmin(ctx, "Admin", adminEmail, password)
	require.NoError(t, err)
	_, err = authUC.CreateUser(ctx, dto.CreateUserRequest{Name: "Vendedor", Email: sellerEmail, Password: password, Role: entity.RoleSeller})
	require.NoError(t, err)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "erp-test"}, log, metrics.New())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		GroupUC:      catalog.NewGroupUseCase(store.Groups(), store.Subgroups()),
		ProductUC:    catalog.NewProductUseCase(store.Products(), store.Groups(), store.Subgroups(), nil, log),
		LocationUC:   catalog.NewLocationUseCase(store.Locations()),
		CargoUC:      catalog.NewPositionUseCase(store.Positions()),
		ClientUC:     catalog.NewClientUseCase(store.Clients()),
		SupplierUC:   catalog.NewSupplierUseCase(store.Suppliers()),
		StockUC:      stock.NewUseCase(tx, store.Stock(), nil, log),
		PurchasingUC: purchasing.NewUseCase(tx, store.PurchaseOrders(), nil, nil, log),
		QuotesUC:     quotes.NewUseCase(tx, store.Quotes(), nil, nil, nil, log),
		SalesUC:      sales.NewUseCase(tx, store.Sales(), nil, log),
		PricingUC:    pricing.NewUseCase(store.Pricing(), nil, log),
		JWTSecret:    testJWTSecret,
	})

	f := &apiFixture{app: app, store: store, invites: invites}
	f.admin = f.login(t, adminEmail)
	f.seller = f.login(t, sellerEmail)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (f *apiFixture) login(t *testing.T, email string) string {
	t.Helper()
	status, env := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, env.Error)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func checkoutBody(qty string) map[string]any {
	return map[string]any{
		"location_id": memory.LocationLoja,
		"items": []map[string]string{{
			"product_id": memory.ProductCano, "quantity": qty, "und_medida": "mts",
			"preco_unitario": "4.00", "subtotal": "10.00",
		}},
	}
}

func TestLogin_SenhaErrada(t *testing.T) {
	f := newAPI(t)
	status, env := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail, "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestAPI_ExigeToken(t *testing.T) {
	f := newAPI(t)
	status, env := f.do(t, http.MethodGet, "/api/produtos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", env.Code)
}

func TestCheckout_BaixaEstoque(t *testing.T) {
	f := newAPI(t)
	f.store.PutStock(memory.ProductCano, memory.LocationLoja, "10")

	status, env := f.do(t, http.MethodPost, "/api/vendas", f.seller, checkoutBody("2,5"))
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.True(t, env.Success)

	var out dto.CodeResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), out.Codigo)

	q, ok := f.store.StockOf(memory.ProductCano, memory.LocationLoja)
	require.True(t, ok)
	assert.Equal(t, "7.5", q.String())
}

func TestCheckout_EstoqueInsuficiente(t *testing.T) {
	f := newAPI(t)
	f.store.PutStock(memory.ProductCano, memory.LocationLoja, "1")

	status, env := f.do(t, http.MethodPost, "/api/vendas", f.seller, checkoutBody("2"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Code)
	assert.Equal(t, memory.ProductCano, env.Fields["product_id"])
	assert.Equal(t, 0, f.store.SaleCount())
}

func TestCheckout_Validacao(t *testing.T) {
	f := newAPI(t)
	body := checkoutBody("abc")
	status, env := f.do(t, http.MethodPost, "/api/vendas", f.seller, body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Contains(t, env.Fields, "items[0].quantity")

	status, env = f.do(t, http.MethodPost, "/api/vendas", f.seller, map[string]any{"location_id": memory.LocationLoja})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Fields, "items")
}

func TestCompra_AprovarExigeAdmin(t *testing.T) {
	f := newAPI(t)
	now := time.Now()
	f.store.PutPurchaseOrder(entity.PurchaseOrder{
		ID: "PO1", Code: "500001", ProductID: memory.ProductCano, SupplierID: memory.SupplierAcme,
		LocationID: memory.LocationLoja, Quantity: decimal.RequireFromString("12"), Unit: entity.UnitMeters,
		Status: entity.PurchasePending, CreatedAt: now, UpdatedAt: now,
	})

	status, env := f.do(t, http.MethodPost, "/api/compras/PO1/aprovar", f.seller, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Code)

	status, env = f.do(t, http.MethodPost, "/api/compras/PO1/aprovar", f.admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	q, ok := f.store.StockOf(memory.ProductCano, memory.LocationLoja)
	require.True(t, ok)
	assert.Equal(t, "12", q.String())

	status, env = f.do(t, http.MethodPost, "/api/compras/PO1/aprovar", f.admin, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", env.Code)
}

func TestOrcamento_ConverterVencido(t *testing.T) {
	f := newAPI(t)
	f.store.PutStock(memory.ProductCano, memory.LocationLoja, "10")
	past := time.Now().AddDate(0, 0, -3)
	f.store.PutQuote(entity.Quote{
		ID: "Q1", Code: "700001", ClientID: memory.ClientMaria, LocationID: memory.LocationLoja,
		Total: decimal.RequireFromString("50.00"), ValidUntil: entity.DateOnly(past), Status: entity.QuoteApproved,
		CreatedAt: past, UpdatedAt: past,
	}, entity.QuoteLine{ID: "QL1", QuoteID: "Q1", LineItem: entity.LineItem{
		ProductID: memory.ProductCano, Quantity: decimal.NewFromInt(5), Unit: entity.UnitMeters,
		UnitPrice: decimal.RequireFromString("10.00"), Subtotal: decimal.RequireFromString("50.00"),
	}})

	status, env := f.do(t, http.MethodPost, "/api/orcamentos/Q1/converter", f.seller, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "QUOTE_EXPIRED", env.Code)

	status, env = f.do(t, http.MethodGet, "/api/orcamentos/Q1", f.seller, nil)
	require.Equal(t, http.StatusOK, status)
	var out dto.OrcamentoResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, entity.QuoteExpired, out.Status)
}

func TestOrcamento_EnviarSemFila(t *testing.T) {
	f := newAPI(t)
	f.store.PutQuote(entity.Quote{
		ID: "Q1", Code: "700001", ClientID: memory.ClientMaria, LocationID: memory.LocationLoja,
		ValidUntil: time.Now().AddDate(0, 1, 0), Status: entity.QuotePending,
	})
	status, env := f.do(t, http.MethodPost, "/api/orcamentos/Q1/enviar", f.seller, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "JOBS_DISABLED", env.Code)
}

func TestEstoque_EscritaExigePerfil(t *testing.T) {
	f := newAPI(t)
	body := map[string]string{"product_id": memory.ProductCano, "location_id": memory.LocationLoja, "quantity": "3"}

	status, _ := f.do(t, http.MethodPost, "/api/estoque/entrada", f.seller, body)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := f.do(t, http.MethodPost, "/api/estoque/entrada", f.admin, body)
	require.Equal(t, http.StatusOK, status, env.Error)
	var out dto.StockResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "3", out.Quantity)
}

func (f *apiFixture) userID(t *testing.T, email string) string {
	t.Helper()
	status, env := f.do(t, http.MethodGet, "/api/users", f.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var users []dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &users))
	for _, u := range users {
		if u.Email == email {
			return u.ID
		}
	}
	t.Fatalf("usuário %s não encontrado", email)
	return ""
}

func TestUsuarioDesativadoPerdeAcesso(t *testing.T) {
	f := newAPI(t)
	sellerID := f.userID(t, sellerEmail)

	status, _ := f.do(t, http.MethodPost, "/api/users/"+sellerID+"/desativar", f.admin, nil)
	require.Equal(t, http.StatusOK, status)

	status, env := f.do(t, http.MethodGet, "/api/produtos", f.seller, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INACTIVE_USER", env.Code)
}

func TestRotaInexistente(t *testing.T) {
	f := newAPI(t)
	status, env := f.do(t, http.MethodGet, "/nada", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestCargos_EscritaExigeAdmin(t *testing.T) {
	f := newAPI(t)

	status, _ := f.do(t, http.MethodPost, "/api/cargos", f.seller, map[string]string{"nome": "Caixa"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := f.do(t, http.MethodPost, "/api/cargos", f.admin, map[string]string{"nome": "Caixa"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var cargo dto.PositionResponse
	require.NoError(t, json.Unmarshal(env.Data, &cargo))

	status, env = f.do(t, http.MethodGet, "/api/cargos", f.seller, nil)
	require.Equal(t, http.StatusOK, status)
	var list []dto.PositionResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Caixa", list[0].Name)

	status, _ = f.do(t, http.MethodDelete, "/api/cargos/"+cargo.ID, f.admin, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestEditarUsuario(t *testing.T) {
	f := newAPI(t)
	f.store.PutPosition("J1", "Caixa")
	sellerID := f.userID(t, sellerEmail)

	status, env := f.do(t, http.MethodPut, "/api/users/"+sellerID, f.admin, map[string]any{
		"name": "Vendedora Bia", "email": "bia@example.com", "cargo_id": "J1",
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	var out dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Vendedora Bia", out.Name)
	assert.Equal(t, "bia@example.com", out.Email)
	assert.Equal(t, "Caixa", out.CargoName)
	assert.True(t, out.IsActive)

	status, _ = f.do(t, http.MethodPut, "/api/users/"+sellerID, f.admin, map[string]any{"email": adminEmail})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = f.do(t, http.MethodPut, "/api/users/"+sellerID, f.admin, map[string]any{"cargo_id": "nao-existe"})
	assert.Equal(t, http.StatusNotFound, status)

	status, env = f.do(t, http.MethodPut, "/api/users/"+sellerID, f.admin, map[string]any{"email": "sem-arroba"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Fields, "email")

	status, _ = f.do(t, http.MethodPut, "/api/users/"+sellerID, f.seller, map[string]any{"name": "Hacker"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestEditarUsuario_NaoDesativaASiMesmo(t *testing.T) {
	f := newAPI(t)
	adminID := f.userID(t, adminEmail)

	status, env := f.do(t, http.MethodPut, "/api/users/"+adminID, f.admin, map[string]any{"is_active": false})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", env.Code)
}

func TestConvite_CriaSenhaEEntra(t *testing.T) {
	f := newAPI(t)

	status, env := f.do(t, http.MethodPost, "/api/users", f.admin, map[string]string{
		"name": "João", "email": "joao@example.com", "role": entity.RoleStockClerk,
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var created dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.PendingInvite)
	require.Len(t, f.invites.sent, 1)
	token := f.invites.sent[0].Token

	// O token do convite não vale como acesso.
	status, env = f.do(t, http.MethodGet, "/api/produtos", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", env.Code)

	status, env = f.do(t, http.MethodPost, "/api/auth/convite", "", map[string]string{"token": token, "password": password})
	require.Equal(t, http.StatusOK, status, env.Error)

	f.login(t, "joao@example.com")

	status, env = f.do(t, http.MethodPost, "/api/auth/convite", "", map[string]string{"token": token, "password": password})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", env.Code)

	status, _ = f.do(t, http.MethodPost, "/api/users/"+created.ID+"/convite", f.admin, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestConvite_Reenvio(t *testing.T) {
	f := newAPI(t)
	status, env := f.do(t, http.MethodPost, "/api/users", f.admin, map[string]string{
		"name": "João", "email": "joao@example.com", "role": entity.RoleSeller,
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var created dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = f.do(t, http.MethodPost, "/api/users/"+created.ID+"/convite", f.admin, nil)
	require.Equal(t, http.StatusAccepted, status, env.Error)
	assert.Len(t, f.invites.sent, 2)
}
