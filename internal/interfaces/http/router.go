package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/auth"
	"github.com/jhoicas/erp-comercial/internal/application/catalog"
	"github.com/jhoicas/erp-comercial/internal/application/pricing"
	"github.com/jhoicas/erp-comercial/internal/application/purchasing"
	"github.com/jhoicas/erp-comercial/internal/application/quotes"
	"github.com/jhoicas/erp-comercial/internal/application/sales"
	"github.com/jhoicas/erp-comercial/internal/application/stock"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	GroupUC      *catalog.GroupUseCase
	ProductUC    *catalog.ProductUseCase
	LocationUC   *catalog.LocationUseCase
	CargoUC      *catalog.PositionUseCase
	ClientUC     *catalog.PartyUseCase
	SupplierUC   *catalog.PartyUseCase
	StockUC      *stock.UseCase
	PurchasingUC *purchasing.UseCase
	QuotesUC     *quotes.UseCase
	SalesUC      *sales.UseCase
	PricingUC    *pricing.UseCase
	Metrics      *metrics.Metrics
	JWTSecret    string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/convite", authHandler.AcceptInvite)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	adminOnly := RequireRole(entity.RoleAdmin)
	stockWriters := RequireRole(entity.RoleAdmin, entity.RoleStockClerk)

	protected.Get("/auth/me", authHandler.Me)

	users := protected.Group("/users", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.CreateUser)
	users.Put("/:id", authHandler.UpdateUser)
	users.Post("/:id/convite", authHandler.SendInvite)
	users.Post("/:id/ativar", authHandler.ActivateUser)
	users.Post("/:id/desativar", authHandler.DeactivateUser)

	// Cadastro básico
	cat := NewCatalogHandler(deps.GroupUC, deps.ProductUC, deps.LocationUC)
	protected.Get("/grupos", cat.ListGroups)
	protected.Post("/grupos", cat.CreateGroup)
	protected.Put("/grupos/:id", cat.UpdateGroup)
	protected.Delete("/grupos/:id", cat.DeleteGroup)
	protected.Get("/subgrupos", cat.ListSubgroups)
	protected.Post("/subgrupos", cat.CreateSubgroup)
	protected.Put("/subgrupos/:id", cat.UpdateSubgroup)
	protected.Delete("/subgrupos/:id", cat.DeleteSubgroup)
	protected.Get("/produtos", cat.ListProducts)
	protected.Post("/produtos", cat.CreateProduct)
	protected.Get("/produtos/:id", cat.GetProduct)
	protected.Put("/produtos/:id", cat.UpdateProduct)
	protected.Delete("/produtos/:id", cat.DeleteProduct)
	protected.Get("/locais", cat.ListLocations)
	protected.Post("/locais", cat.CreateLocation)
	protected.Put("/locais/:id", cat.UpdateLocation)
	protected.Delete("/locais/:id", cat.DeleteLocation)

	cg := NewCargoHandler(deps.CargoUC)
	protected.Get("/cargos", cg.List)
	protected.Post("/cargos", adminOnly, cg.Create)
	protected.Put("/cargos/:id", adminOnly, cg.Update)
	protected.Delete("/cargos/:id", adminOnly, cg.Delete)

	registerParty(protected.Group("/clientes"), NewPartyHandler(deps.ClientUC))
	registerParty(protected.Group("/fornecedores"), NewPartyHandler(deps.SupplierUC))

	// Estoque e PDV
	st := NewStockHandler(deps.StockUC, deps.Metrics)
	protected.Get("/estoque", st.List)
	protected.Post("/estoque", stockWriters, st.Set)
	protected.Post("/estoque/entrada", stockWriters, st.Entry)
	protected.Delete("/estoque/:id", stockWriters, st.Delete)
	protected.Get("/pdv/:location_id/produtos", st.PDV)

	// Compras
	co := NewCompraHandler(deps.PurchasingUC, deps.Metrics)
	protected.Get("/compras", co.List)
	protected.Post("/compras", co.Create)
	protected.Get("/compras/:id", co.Get)
	protected.Put("/compras/:id", co.Update)
	protected.Delete("/compras/:id", co.Delete)
	protected.Post("/compras/:id/aprovar", adminOnly, co.Approve)
	protected.Post("/compras/:id/reprovar", adminOnly, co.Reject)
	protected.Post("/compras/:id/nota", co.UploadNota)

	// Orçamentos
	or := NewOrcamentoHandler(deps.QuotesUC, deps.Metrics)
	protected.Get("/orcamentos", or.List)
	protected.Post("/orcamentos", or.Create)
	protected.Get("/orcamentos/:id", or.Get)
	protected.Put("/orcamentos/:id", or.Update)
	protected.Delete("/orcamentos/:id", or.Delete)
	protected.Post("/orcamentos/:id/aprovar", or.Approve)
	protected.Post("/orcamentos/:id/recusar", or.Reject)
	protected.Post("/orcamentos/:id/converter", or.Convert)
	protected.Get("/orcamentos/:id/pdf", or.PDF)
	protected.Post("/orcamentos/:id/enviar", or.Send)

	// Vendas
	ve := NewVendaHandler(deps.SalesUC, deps.Metrics)
	protected.Get("/vendas", ve.List)
	protected.Post("/vendas", ve.Checkout)
	protected.Get("/vendas/:id", ve.Get)

	// Preços
	pr := NewPricingHandler(deps.PricingUC)
	protected.Get("/precos", pr.List)
	protected.Post("/precos", pr.Create)
	protected.Get("/precos/:product_id/:location_id", pr.Lookup)
	protected.Put("/precos/:id", pr.Update)
	protected.Delete("/precos/:id", pr.Delete)
}

func registerParty(r fiber.Router, h *PartyHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}
