package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/erp-comercial/internal/application/quotes"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/jobs"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/mail"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/erp-comercial/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/postgres"
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
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("REDIS_ADDR é obrigatório para o worker")
	}
	if cfg.SMTP.Host == "" {
		log.Warn().Msg("SMTP_HOST vazio: e-mails de orçamento e convites serão descartados")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	renderer := infrapdf.NewQuotePDFGenerator(cfg.App.StoreName)
	// O worker só lê orçamentos: sem cache e sem fila.
	quotesUC := quotes.NewUseCase(
		postgres.NewTxRunner(pool), postgres.NewQuoteRepository(pool),
		nil, renderer, nil, log.Component("orcamentos"),
	)
	sender := mail.NewSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	m := metrics.New()
	worker := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Concurrency: cfg.Redis.Concurrency,
		Logger:      log.Component("worker"),
		Handlers: []jobs.TaskHandler{
			{
				Type:    jobs.TaskQuoteEmail,
				Handler: jobs.NewQuoteEmailHandler(quotesUC, renderer, sender, cfg.App.StoreName, m, log.Component("orcamento_email")),
			},
			{
				Type:    jobs.TaskUserInvite,
				Handler: jobs.NewUserInviteHandler(sender, cfg.App.SignupURL, cfg.App.StoreName, m, log.Component("convite_email")),
			},
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Int("concurrency", cfg.Redis.Concurrency).Msg("worker iniciado")
		return worker.Run(gctx)
	})
	if cfg.Redis.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.Redis.MetricsAddr,
			Handler:           m.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("worker finalizado com erro")
		os.Exit(1)
	}
	log.Info().Msg("worker encerrado")
}
