package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/pkg/jwt"
)

// Chaves de c.Locals preenchidas pelo AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// ActiveChecker confirma que o usuário do token continua ativo.
type ActiveChecker interface {
	CheckActive(ctx context.Context, userID string) error
}

// AuthMiddleware valida o Bearer Token e grava user_id e role em c.Locals.
// Com users != nil, recusa usuários removidos ou desativados depois da emissão.
func AuthMiddleware(jwtSecret string, users ActiveChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return failWith(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "header Authorization obrigatório")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return failWith(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return failWith(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vazio")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return failWith(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido ou expirado")
		}
		if users != nil {
			if err := users.CheckActive(c.UserContext(), claims.UserID); err != nil {
				if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) {
					return failWith(c, fiber.StatusUnauthorized, "INACTIVE_USER", "usuário inativo ou removido")
				}
				return fail(c, err)
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole deixa passar só os papéis informados. Deve vir depois do AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return failWith(c, fiber.StatusUnauthorized, "MISSING_ROLE", "token sem papel de usuário")
		}
		if _, ok := allowed[role]; !ok {
			return failWith(c, fiber.StatusForbidden, "FORBIDDEN", "seu perfil não tem acesso a esta operação")
		}
		return c.Next()
	}
}

// GetUserID devolve o usuário autenticado.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devolve o papel do usuário autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
