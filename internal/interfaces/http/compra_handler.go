package http

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/purchasing"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
)

// CompraHandler pedidos de compra.
type CompraHandler struct {
	uc      *purchasing.UseCase
	metrics *metrics.Metrics
}

func NewCompraHandler(uc *purchasing.UseCase, m *metrics.Metrics) *CompraHandler {
	return &CompraHandler{uc: uc, metrics: m}
}

// List godoc
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "pendente | aprovado | reprovado | entregue"
// @Param        supplier_id  query  string  false  "Fornecedor"
// @Param        location_id  query  string  false  "Local"
// @Success      200  {object}  dto.ActionResponse{data=[]dto.CompraResponse}
// @Router       /api/compras [get]
func (h *CompraHandler) List(c *fiber.Ctx) error {
	var in dto.CompraListRequest
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
// @Summary      Obter compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da compra"
// @Success      200  {object}  dto.ActionResponse{data=dto.CompraResponse}
// @Failure      404  {object}  dto.ActionResponse
// @Router       /api/compras/{id} [get]
func (h *CompraHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Criar compra
// @Description  Nasce pendente, com código de 6 dígitos.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompraRequest  true  "Dados da compra"
// @Success      201   {object}  dto.ActionResponse{data=dto.CodeResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/compras [post]
func (h *CompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CompraRequest
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
// @Summary      Editar compra pendente
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da compra"
// @Param        body  body  dto.CompraRequest  true  "Dados da compra"
// @Success      200   {object}  dto.ActionResponse{data=dto.CompraResponse}
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/compras/{id} [put]
func (h *CompraHandler) Update(c *fiber.Ctx) error {
	var in dto.CompraRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *CompraHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

// Approve godoc
// @Summary      Aprovar compra
// @Description  Credita a quantidade no estoque do local. Só a partir de pendente.
// @Tags         compras
// @Security     Bearer
// @Param        id   path  string  true  "ID da compra"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ActionResponse
// @Failure      409  {object}  dto.ActionResponse
// @Router       /api/compras/{id}/aprovar [post]
func (h *CompraHandler) Approve(c *fiber.Ctx) error {
	err := h.uc.Approve(c.UserContext(), c.Params("id"))
	if h.metrics.Workflow("compra_aprovar", err, isBusinessError) != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

// Reject godoc
// @Summary      Reprovar compra
// @Tags         compras
// @Security     Bearer
// @Param        id   path  string  true  "ID da compra"
// @Success      200  {object}  dto.ActionResponse
// @Failure      409  {object}  dto.ActionResponse
// @Router       /api/compras/{id}/reprovar [post]
func (h *CompraHandler) Reject(c *fiber.Ctx) error {
	err := h.uc.Reject(c.UserContext(), c.Params("id"))
	if h.metrics.Workflow("compra_reprovar", err, isBusinessError) != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

// UploadNota godoc
// @Summary      Anexar nota fiscal
// @Description  multipart (campo "file") ou JSON {file_name, content base64}. Aceita PDF, PNG e JPG.
// @Tags         compras
// @Security     Bearer
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        id    path      string  true   "ID da compra"
// @Param        file  formData  file    false  "Arquivo"
// @Success      200   {object}  dto.ActionResponse{data=dto.CompraResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/compras/{id}/nota [post]
func (h *CompraHandler) UploadNota(c *fiber.Ctx) error {
	id := c.Params("id")
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return failWith(c, fiber.StatusBadRequest, "VALIDATION", "arquivo obrigatório no campo file")
		}
		f, err := fh.Open()
		if err != nil {
			return fail(c, err)
		}
		defer f.Close()
		out, err := h.uc.UploadNota(c.UserContext(), id, fh.Filename, f)
		if err != nil {
			return fail(c, err)
		}
		return respond(c, fiber.StatusOK, out)
	}

	var in dto.UploadNotaRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	raw := in.Content
	if i := strings.Index(raw, ";base64,"); i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return failWith(c, fiber.StatusBadRequest, "VALIDATION", "content: conteúdo base64 inválido")
	}
	out, err := h.uc.UploadNota(c.UserContext(), id, in.FileName, bytes.NewReader(data))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
