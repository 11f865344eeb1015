package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/catalog"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
)

// PartyHandler atende /api/clientes e /api/fornecedores com o mesmo código.
type PartyHandler struct {
	uc *catalog.PartyUseCase
}

func NewPartyHandler(uc *catalog.PartyUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes ou fornecedores
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        ativos  query  bool  false  "Somente ativos"
// @Success      200  {object}  dto.ActionResponse{data=[]dto.PartyResponse}
// @Router       /api/clientes [get]
// @Router       /api/fornecedores [get]
func (h *PartyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("ativos", false))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *PartyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Cadastrar cliente ou fornecedor
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartyRequest  true  "Dados cadastrais"
// @Success      201   {object}  dto.ActionResponse{data=dto.PartyResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/clientes [post]
// @Router       /api/fornecedores [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}
