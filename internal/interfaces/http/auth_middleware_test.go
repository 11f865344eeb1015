package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-comercial/internal/domain"
	apphttp "github.com/jhoicas/erp-comercial/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/erp-comercial/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "erp-comercial-test"
	testExpMin    = 60
)

// staticChecker devolve err para qualquer usuário.
type staticChecker struct{ err error }

func (s staticChecker) CheckActive(context.Context, string) error { return s.err }

func buildRoleApp(checker apphttp.ActiveChecker, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, checker),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestRequireRole_AdminAcessaRotaAdmin(t *testing.T) {
	resp, body := getProtected(t, buildRoleApp(nil, "admin"), tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, testUserID, body["user_id"])
}

func TestRequireRole_EstoquistaEmRotaDeEstoque(t *testing.T) {
	resp, _ := getProtected(t, buildRoleApp(nil, "admin", "estoquista"), tokenForRole(t, "estoquista"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_VendedorBloqueadoEmRotaAdmin(t *testing.T) {
	resp, body := getProtected(t, buildRoleApp(nil, "admin"), tokenForRole(t, "vendedor"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_TokenSemPapel(t *testing.T) {
	resp, body := getProtected(t, buildRoleApp(nil, "admin"), tokenForRole(t, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

func TestAuthMiddleware_Cabecalhos(t *testing.T) {
	app := buildRoleApp(nil, "admin")
	cases := []struct {
		header string
		code   string
	}{
		{"", "MISSING_TOKEN"},
		{"Basic abc", "INVALID_TOKEN"},
		{"Bearer token.invalido.aqui", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.header), func(t *testing.T) {
			resp, body := getProtected(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestAuthMiddleware_UsuarioDesativado(t *testing.T) {
	checker := staticChecker{err: fmt.Errorf("%w: usuário inativo", domain.ErrForbidden)}
	resp, body := getProtected(t, buildRoleApp(checker, "admin"), tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INACTIVE_USER", body["code"])
}
