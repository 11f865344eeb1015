package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/sales"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
)

// VendaHandler finalização e consulta de vendas do PDV.
type VendaHandler struct {
	uc      *sales.UseCase
	metrics *metrics.Metrics
}

func NewVendaHandler(uc *sales.UseCase, m *metrics.Metrics) *VendaHandler {
	return &VendaHandler{uc: uc, metrics: m}
}

// Checkout godoc
// @Summary      Finalizar venda (PDV)
// @Description  Confere o saldo de todos os itens antes de gravar; se algum faltar, nada é gravado.
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Local, cliente opcional e itens"
// @Success      201   {object}  dto.ActionResponse{data=dto.CodeResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/vendas [post]
func (h *VendaHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Checkout(c.UserContext(), in)
	if h.metrics.Workflow("venda_finalizar", err, isBusinessError) != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// Get godoc
// @Summary      Obter venda com itens
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da venda"
// @Success      200  {object}  dto.ActionResponse{data=dto.VendaResponse}
// @Failure      404  {object}  dto.ActionResponse
// @Router       /api/vendas/{id} [get]
func (h *VendaHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar vendas
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Local"
// @Param        client_id    query  string  false  "Cliente"
// @Success      200  {object}  dto.ActionResponse{data=[]dto.VendaResponse}
// @Router       /api/vendas [get]
func (h *VendaHandler) List(c *fiber.Ctx) error {
	var in dto.VendaListRequest
	if valid, err := bindQuery(c, &in); !valid {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
