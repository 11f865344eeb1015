package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
)

// AppConfig parâmetros do servidor Fiber.
type AppConfig struct {
	Name               string
	CORSOrigins        string
	RateLimitPerMinute int // 0 desliga
	BodyLimitMB        int
}

// NewApp monta o fiber.App com a pilha de middlewares comum e /health e /metrics.
// As rotas de negócio entram depois via Router.
func NewApp(cfg AppConfig, log zerolog.Logger, m *metrics.Metrics) *fiber.App {
	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 10
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    bodyLimit * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New())
	app.Use(AccessLog(log))
	app.Use(m.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: originsOrAll(cfg.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if cfg.RateLimitPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitPerMinute,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return !strings.HasPrefix(c.Path(), "/api")
			},
			LimitReached: func(c *fiber.Ctx) error {
				return failWith(c, fiber.StatusTooManyRequests, "RATE_LIMIT", "muitas requisições, aguarde um instante")
			},
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	return app
}

// errorHandler converte erros não tratados (rota inexistente, pânico, corpo grande demais) no envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	resp := dto.ActionResponse{Success: false, Code: "INTERNAL", Error: "erro interno, tente novamente"}
	switch code {
	case fiber.StatusNotFound:
		resp.Code, resp.Error = "NOT_FOUND", "rota não encontrada"
	case fiber.StatusMethodNotAllowed:
		resp.Code, resp.Error = "METHOD_NOT_ALLOWED", "método não permitido"
	case fiber.StatusRequestEntityTooLarge:
		resp.Code, resp.Error = "VALIDATION", "arquivo ou corpo grande demais"
	default:
		if code < fiber.StatusInternalServerError && fe != nil {
			resp.Code, resp.Error = "BAD_REQUEST", fe.Message
		}
	}
	return c.Status(code).JSON(resp)
}

func originsOrAll(s string) string {
	if strings.TrimSpace(s) == "" {
		return "*"
	}
	return s
}
