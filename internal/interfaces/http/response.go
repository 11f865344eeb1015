package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/domain"
)

// errorKind associa um erro sentinela ao status HTTP e ao código do envelope.
type errorKind struct {
	target  error
	status  int
	code    string
	message string // usado quando o erro não traz detalhe
}

var errorKinds = []errorKind{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "dados inválidos"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "registro não encontrado"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "estoque insuficiente"},
	{domain.ErrQuoteExpired, fiber.StatusConflict, "QUOTE_EXPIRED", "orçamento vencido"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE", "operação não permitida no status atual"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "registro já existe"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "DUPLICATE", "o email já está cadastrado"},
	{domain.ErrCodeConflict, fiber.StatusConflict, "CODE_CONFLICT", "não foi possível gerar um código único, tente novamente"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciais inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acesso negado"},
	{ports.ErrJobsDisabled, fiber.StatusServiceUnavailable, "JOBS_DISABLED", "envio de e-mail indisponível"},
}

// isBusinessError erros esperados (4xx); o resto é falha de infraestrutura.
func isBusinessError(err error) bool {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status < fiber.StatusInternalServerError
		}
	}
	return false
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.ActionResponse{Success: true, Data: data})
}

func respondEmpty(c *fiber.Ctx) error {
	return c.JSON(dto.ActionResponse{Success: true})
}

func failWith(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ActionResponse{Success: false, Error: msg, Code: code})
}

// fail converte err no envelope de erro. Erros desconhecidos viram 500
// com mensagem genérica e são registrados no log da requisição.
func fail(c *fiber.Ctx, err error) error {
	var shortage *domain.StockShortage
	if errors.As(err, &shortage) {
		return c.Status(fiber.StatusConflict).JSON(dto.ActionResponse{
			Success: false,
			Error:   shortage.Error(),
			Code:    "INSUFFICIENT_STOCK",
			Fields:  map[string]string{"product_id": shortage.ProductID},
		})
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return failWith(c, k.status, k.code, detail(err, k.target, k.message))
		}
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("erro interno")
	return failWith(c, fiber.StatusInternalServerError, "INTERNAL", "erro interno, tente novamente")
}

// detail extrai o texto depois de "<sentinela>: " ou cai no padrão.
func detail(err, target error, fallback string) string {
	msg := err.Error()
	prefix := target.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		if d := strings.TrimSpace(msg[i+len(prefix):]); d != "" {
			return d
		}
	}
	if msg == target.Error() {
		return fallback
	}
	return msg
}
