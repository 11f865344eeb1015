package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/erp-comercial/internal/application/auth"
	"github.com/jhoicas/erp-comercial/internal/application/catalog"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/application/pricing"
	"github.com/jhoicas/erp-comercial/internal/application/purchasing"
	"github.com/jhoicas/erp-comercial/internal/application/quotes"
	"github.com/jhoicas/erp-comercial/internal/application/sales"
	"github.com/jhoicas/erp-comercial/internal/application/stock"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/cache"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/jobs"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/erp-comercial/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/erp-comercial/internal/interfaces/http"
	"github.com/jhoicas/erp-comercial/pkg/config"
	"github.com/jhoicas/erp-comercial/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	// Redis é opcional: sem ele a API roda sem cache e sem e-mails (orçamentos e convites).
	var (
		readCache ports.Cache
		mailer    ports.QuoteMailer
		inviter   ports.UserInviter
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis indisponível, seguindo sem cache e sem fila")
			_ = rdb.Close()
		} else {
			defer rdb.Close()
			readCache = cache.NewRedisCache(rdb, cfg.Redis.CacheTTL)
			jobClient := jobs.NewClient(asynq.RedisClientOpt{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer jobClient.Close()
			mailer = jobClient
			inviter = jobClient
		}
	} else {
		log.Info().Msg("REDIS_ADDR vazio: cache e fila desligados")
	}

	files := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.PublicURL)
	renderer := infrapdf.NewQuotePDFGenerator(cfg.App.StoreName)

	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUserRepository(pool)
	positionRepo := postgres.NewPositionRepository(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	subgroupRepo := postgres.NewSubgroupRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, positionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if inviter != nil {
		authUC.WithInviter(inviter, log.Component("usuarios"))
	}
	cargoUC := catalog.NewPositionUseCase(positionRepo)
	groupUC := catalog.NewGroupUseCase(groupRepo, subgroupRepo)
	productUC := catalog.NewProductUseCase(
		postgres.NewProductRepository(pool), groupRepo, subgroupRepo,
		readCache, log.Component("catalogo"),
	)
	locationUC := catalog.NewLocationUseCase(postgres.NewLocationRepository(pool))
	clientUC := catalog.NewClientUseCase(postgres.NewClientRepository(pool))
	supplierUC := catalog.NewSupplierUseCase(postgres.NewSupplierRepository(pool))

	stockUC := stock.NewUseCase(txRunner, postgres.NewStockRepository(pool), readCache, log.Component("estoque"))
	purchasingUC := purchasing.NewUseCase(txRunner, postgres.NewPurchaseOrderRepository(pool), files, readCache, log.Component("compras"))
	quotesUC := quotes.NewUseCase(txRunner, postgres.NewQuoteRepository(pool), readCache, renderer, mailer, log.Component("orcamentos"))
	salesUC := sales.NewUseCase(txRunner, postgres.NewSaleRepository(pool), readCache, log.Component("vendas"))
	pricingUC := pricing.NewUseCase(postgres.NewPricingRepository(pool), readCache, log.Component("precos"))

	m := metrics.New()
	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:               cfg.App.Name,
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
	}, log.Zerolog(), m)

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP Comercial API",
	}))
	app.Static(cfg.Storage.PublicURL, cfg.Storage.UploadDir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		GroupUC:      groupUC,
		ProductUC:    productUC,
		LocationUC:   locationUC,
		CargoUC:      cargoUC,
		ClientUC:     clientUC,
		SupplierUC:   supplierUC,
		StockUC:      stockUC,
		PurchasingUC: purchasingUC,
		QuotesUC:     quotesUC,
		SalesUC:      salesUC,
		PricingUC:    pricingUC,
		Metrics:      m,
		JWTSecret:    cfg.JWT.Secret,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escutando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado com erro")
		os.Exit(1)
	}
	log.Info().Msg("API encerrada")
}
