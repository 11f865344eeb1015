// Package jobs agenda e processa tarefas em background com asynq.
package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// TaskHandler associa um tipo de tarefa ao seu handler.
type TaskHandler struct {
	Type    string
	Handler asynq.Handler
}

// WorkerConfig dependências do worker.
type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Concurrency int
	Logger      zerolog.Logger
	Handlers    []TaskHandler
}

// Worker embrulha o servidor asynq.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    zerolog.Logger
}

// NewWorker monta servidor e mux.
func NewWorker(cfg WorkerConfig) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueDefault: 1},
		Logger:      asynqLogger{cfg.Logger},
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, t *asynq.Task, err error) {
			cfg.Logger.Error().Err(err).Str("task", t.Type()).Msg("tarefa falhou")
		}),
	})
	mux := asynq.NewServeMux()
	for _, h := range cfg.Handlers {
		if h.Type == "" || h.Handler == nil {
			continue
		}
		mux.Handle(h.Type, h.Handler)
	}
	return &Worker{server: srv, mux: mux, log: cfg.Logger}
}

// Run processa tarefas até o contexto ser cancelado.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: não configurado")
	}
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	<-ctx.Done()
	w.log.Info().Msg("encerrando worker")
	w.server.Shutdown()
	return nil
}

// asynqLogger adapta zerolog à interface asynq.Logger.
type asynqLogger struct{ zl zerolog.Logger }

func (l asynqLogger) Debug(args ...any) { l.zl.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.zl.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.zl.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.zl.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.zl.Fatal().Msg(fmt.Sprint(args...)) }
