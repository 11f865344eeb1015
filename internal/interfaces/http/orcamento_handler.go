package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/quotes"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
)

// OrcamentoHandler orçamentos, conversão em venda, PDF e envio por e-mail.
type OrcamentoHandler struct {
	uc      *quotes.UseCase
	metrics *metrics.Metrics
}

func NewOrcamentoHandler(uc *quotes.UseCase, m *metrics.Metrics) *OrcamentoHandler {
	return &OrcamentoHandler{uc: uc, metrics: m}
}

// List godoc
// @Summary      Listar orçamentos
// @Description  O status vencido é derivado da validade e pode ser usado como filtro.
// @Tags         orcamentos
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "pendente | aprovado | recusado | convertido | vencido"
// @Param        client_id    query  string  false  "Cliente"
// @Param        location_id  query  string  false  "Local"
// @Success      200  {object}  dto.ActionResponse{data=[]dto.OrcamentoResponse}
// @Router       /api/orcamentos [get]
func (h *OrcamentoHandler) List(c *fiber.Ctx) error {
	var in dto.OrcamentoListRequest
	if valid, err := bindQuery(c, &in); !valid {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Get godoc
// @Summary      Obter orçamento com itens
// @Tags         orcamentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do orçamento"
// @Success      200  {object}  dto.ActionResponse{data=dto.OrcamentoResponse}
// @Failure      404  {object}  dto.ActionResponse
// @Router       /api/orcamentos/{id} [get]
func (h *OrcamentoHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Criar orçamento
// @Tags         orcamentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrcamentoRequest  true  "Cabeçalho e itens"
// @Success      201   {object}  dto.ActionResponse{data=dto.CodeResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/orcamentos [post]
func (h *OrcamentoHandler) Create(c *fiber.Ctx) error {
	var in dto.OrcamentoRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Editar orçamento pendente
// @Description  Substitui todos os itens e recalcula o total.
// @Tags         orcamentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do orçamento"
// @Param        body  body  dto.OrcamentoRequest  true  "Cabeçalho e itens"
// @Success      200   {object}  dto.ActionResponse{data=dto.OrcamentoResponse}
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/orcamentos/{id} [put]
func (h *OrcamentoHandler) Update(c *fiber.Ctx) error {
	var in dto.OrcamentoRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *OrcamentoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

func (h *OrcamentoHandler) Approve(c *fiber.Ctx) error {
	err := h.uc.Approve(c.UserContext(), c.Params("id"))
	if h.metrics.Workflow("orcamento_aprovar", err, isBusinessError) != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

func (h *OrcamentoHandler) Reject(c *fiber.Ctx) error {
	err := h.uc.Reject(c.UserContext(), c.Params("id"))
	if h.metrics.Workflow("orcamento_recusar", err, isBusinessError) != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

// Convert godoc
// @Summary      Converter orçamento em venda
// @Description  Exige status aprovado e validade não vencida; baixa o estoque do local de todos os itens ou de nenhum.
// @Tags         orcamentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do orçamento"
// @Success      201  {object}  dto.ActionResponse{data=dto.CodeResponse}
// @Failure      404  {object}  dto.ActionResponse
// @Failure      409  {object}  dto.ActionResponse
// @Router       /api/orcamentos/{id}/converter [post]
func (h *OrcamentoHandler) Convert(c *fiber.Ctx) error {
	out, err := h.uc.Convert(c.UserContext(), c.Params("id"))
	if h.metrics.Workflow("orcamento_converter", err, isBusinessError) != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// PDF godoc
// @Summary      PDF do orçamento
// @Tags         orcamentos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do orçamento"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ActionResponse
// @Router       /api/orcamentos/{id}/pdf [get]
func (h *OrcamentoHandler) PDF(c *fiber.Ctx) error {
	data, name, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
	return c.Send(data)
}

// Send godoc
// @Summary      Enviar orçamento por e-mail
// @Description  Agenda o envio do PDF; sem "to" usa o e-mail do cliente.
// @Tags         orcamentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID do orçamento"
// @Param        body  body  dto.SendOrcamentoRequest  false  "Destinatário"
// @Success      202   {object}  dto.ActionResponse
// @Failure      503   {object}  dto.ActionResponse
// @Router       /api/orcamentos/{id}/enviar [post]
func (h *OrcamentoHandler) Send(c *fiber.Ctx) error {
	var in dto.SendOrcamentoRequest
	if len(c.Body()) > 0 {
		if valid, err := bindBody(c, &in); !valid {
			return err
		}
	}
	if err := h.uc.SendEmail(c.UserContext(), c.Params("id"), in.To); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusAccepted, nil)
}
