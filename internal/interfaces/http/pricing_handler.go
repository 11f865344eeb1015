package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/pricing"
)

// PricingHandler preços por produto e local.
type PricingHandler struct {
	uc *pricing.UseCase
}

func NewPricingHandler(uc *pricing.UseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// List godoc
// @Summary      Listar preços
// @Tags         precos
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Produto"
// @Param        location_id  query  string  false  "Local"
// @Success      200  {object}  dto.ActionResponse{data=[]dto.PricingResponse}
// @Router       /api/precos [get]
func (h *PricingHandler) List(c *fiber.Ctx) error {
	var in dto.PricingListRequest
	if valid, err := bindQuery(c, &in); !valid {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Lookup godoc
// @Summary      Preço de um produto em um local
// @Tags         precos
// @Security     Bearer
// @Produce      json
// @Param        product_id   path  string  true  "Produto"
// @Param        location_id  path  string  true  "Local"
// @Success      200  {object}  dto.ActionResponse{data=dto.PricingResponse}
// @Failure      404  {object}  dto.ActionResponse
// @Router       /api/precos/{product_id}/{location_id} [get]
func (h *PricingHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.ForProductLocation(c.UserContext(), c.Params("product_id"), c.Params("location_id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Cadastrar preço
// @Description  Um preço por par (produto, local).
// @Tags         precos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PricingRequest  true  "Preço"
// @Success      201   {object}  dto.ActionResponse{data=dto.PricingResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/precos [post]
func (h *PricingHandler) Create(c *fiber.Ctx) error {
	var in dto.PricingRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

func (h *PricingHandler) Update(c *fiber.Ctx) error {
	var in dto.PricingRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *PricingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}
