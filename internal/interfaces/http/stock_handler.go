package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/stock"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
)

// StockHandler saldos, entradas de estoque e catálogo do PDV.
type StockHandler struct {
	uc      *stock.UseCase
	metrics *metrics.Metrics
}

func NewStockHandler(uc *stock.UseCase, m *metrics.Metrics) *StockHandler {
	return &StockHandler{uc: uc, metrics: m}
}

// List godoc
// @Summary      Saldos de estoque
// @Description  Informe location_id ou product_id.
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Local"
// @Param        product_id   query  string  false  "Produto"
// @Success      200  {object}  dto.ActionResponse{data=[]dto.StockResponse}
// @Failure      400  {object}  dto.ActionResponse
// @Router       /api/estoque [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var (
		out []dto.StockResponse
		err error
	)
	switch {
	case c.Query("location_id") != "":
		out, err = h.uc.ByLocation(c.UserContext(), c.Query("location_id"))
	case c.Query("product_id") != "":
		out, err = h.uc.ByProduct(c.UserContext(), c.Query("product_id"))
	default:
		return failWith(c, fiber.StatusBadRequest, "VALIDATION", "informe location_id ou product_id")
	}
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Set godoc
// @Summary      Gravar saldo absoluto
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetStockRequest  true  "Produto, local e quantidade"
// @Success      200   {object}  dto.ActionResponse{data=dto.StockResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/estoque [post]
func (h *StockHandler) Set(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Set(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Entry godoc
// @Summary      Entrada de estoque
// @Description  Soma a quantidade ao saldo; com compra_id a compra aprovada passa a entregue.
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockEntryRequest  true  "Entrada"
// @Success      200   {object}  dto.ActionResponse{data=dto.StockResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/estoque/entrada [post]
func (h *StockHandler) Entry(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Entry(c.UserContext(), in)
	if h.metrics.Workflow("estoque_entrada", err, isBusinessError) != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Remover linha de estoque
// @Tags         estoque
// @Security     Bearer
// @Param        id   path  string  true  "ID da linha"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ActionResponse
// @Router       /api/estoque/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

// PDV godoc
// @Summary      Produtos disponíveis no PDV
// @Description  Itens com saldo positivo no local, com o preço cadastrado para o local (ou null).
// @Tags         pdv
// @Security     Bearer
// @Produce      json
// @Param        location_id  path  string  true  "Local"
// @Success      200  {object}  dto.ActionResponse{data=[]dto.PDVItemResponse}
// @Router       /api/pdv/{location_id}/produtos [get]
func (h *StockHandler) PDV(c *fiber.Ctx) error {
	out, err := h.uc.ForPDV(c.UserContext(), c.Params("location_id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
