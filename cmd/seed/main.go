// seed cria o administrador inicial e, opcionalmente, os locais de demonstração.
//
// Uso: go run ./cmd/seed [-demo]
// Lê ADMIN_NAME, ADMIN_EMAIL e ADMIN_PASSWORD do ambiente.
// Pode ser executado várias vezes: o administrador só é criado se o email ainda não existir.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/erp-comercial/internal/application/auth"
	"github.com/jhoicas/erp-comercial/internal/application/catalog"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-comercial/pkg/config"
	"github.com/jhoicas/erp-comercial/pkg/logger"
)

var demoLocations = []dto.LocationRequest{
	{Name: "Loja", City: "São Paulo"},
	{Name: "Depósito", City: "São Paulo"},
}

func main() {
	demo := flag.Bool("demo", false, "cria também os locais Loja e Depósito")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	name := envOr("ADMIN_NAME", "Administrador")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal().Msg("ADMIN_EMAIL e ADMIN_PASSWORD são obrigatórios")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewPositionRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, name, email, password)
	if err != nil {
		log.Fatal().Err(err).Msg("criar administrador")
	}
	if created {
		log.Info().Str("email", email).Msg("administrador criado")
	} else {
		log.Info().Str("email", email).Msg("administrador já existe")
	}

	if !*demo {
		return
	}
	locations := catalog.NewLocationUseCase(postgres.NewLocationRepository(pool))
	existing, err := locations.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar locais")
	}
	have := make(map[string]bool, len(existing))
	for _, l := range existing {
		have[l.Name] = true
	}
	for _, in := range demoLocations {
		if have[in.Name] {
			continue
		}
		if _, err := locations.Create(ctx, in); err != nil {
			log.Fatal().Err(err).Str("local", in.Name).Msg("criar local")
		}
		log.Info().Str("local", in.Name).Msg("local criado")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
