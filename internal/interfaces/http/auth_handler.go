package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/auth"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
)

// AuthHandler login e gestão de usuários.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sessão
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.ActionResponse{data=dto.LoginResponse}
// @Failure      401   {object}  dto.ActionResponse
// @Failure      403   {object}  dto.ActionResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Me godoc
// @Summary      Usuário autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, fiber.Map{"user_id": GetUserID(c), "role": GetRole(c)})
}

// CreateUser godoc
// @Summary      Cadastrar usuário
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Dados do usuário"
// @Success      201   {object}  dto.ActionResponse{data=dto.UserResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.CreateUser(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// UpdateUser godoc
// @Summary      Editar usuário
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID do usuário"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ActionResponse{data=dto.UserResponse}
// @Failure      404   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/users/{id} [put]
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	if in.IsActive != nil && !*in.IsActive && c.Params("id") == GetUserID(c) {
		return failWith(c, fiber.StatusConflict, "INVALID_STATE", "não é possível desativar o próprio usuário")
	}
	out, err := h.uc.UpdateUser(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// SendInvite godoc
// @Summary      Reenviar convite
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID do usuário"
// @Success      202  {object}  dto.ActionResponse
// @Failure      409  {object}  dto.ActionResponse
// @Failure      503  {object}  dto.ActionResponse
// @Router       /api/users/{id}/convite [post]
func (h *AuthHandler) SendInvite(c *fiber.Ctx) error {
	if err := h.uc.SendInvite(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusAccepted, fiber.Map{"enfileirado": true})
}

// AcceptInvite godoc
// @Summary      Aceitar convite e definir senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcceptInviteRequest  true  "token e nova senha"
// @Success      200   {object}  dto.ActionResponse{data=dto.UserResponse}
// @Failure      401   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/auth/convite [post]
func (h *AuthHandler) AcceptInvite(c *fiber.Ctx) error {
	var in dto.AcceptInviteRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.AcceptInvite(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// ListUsers godoc
// @Summary      Listar usuários
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResponse{data=[]dto.UserResponse}
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// ActivateUser godoc
// @Summary      Reativar usuário
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID do usuário"
// @Success      200  {object}  dto.ActionResponse{data=dto.UserResponse}
// @Router       /api/users/{id}/ativar [post]
func (h *AuthHandler) ActivateUser(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

// DeactivateUser godoc
// @Summary      Desativar usuário
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID do usuário"
// @Success      200  {object}  dto.ActionResponse{data=dto.UserResponse}
// @Router       /api/users/{id}/desativar [post]
func (h *AuthHandler) DeactivateUser(c *fiber.Ctx) error {
	if c.Params("id") == GetUserID(c) {
		return failWith(c, fiber.StatusConflict, "INVALID_STATE", "não é possível desativar o próprio usuário")
	}
	return h.setActive(c, false)
}

func (h *AuthHandler) setActive(c *fiber.Ctx, active bool) error {
	out, err := h.uc.SetActive(c.UserContext(), c.Params("id"), active)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
