package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/catalog"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
)

// CargoHandler CRUD de cargos.
type CargoHandler struct {
	uc *catalog.PositionUseCase
}

func NewCargoHandler(uc *catalog.PositionUseCase) *CargoHandler {
	return &CargoHandler{uc: uc}
}

// List godoc
// @Summary      Listar cargos
// @Tags         cargos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResponse{data=[]dto.PositionResponse}
// @Router       /api/cargos [get]
func (h *CargoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Criar cargo
// @Tags         cargos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PositionRequest  true  "Nome do cargo"
// @Success      201   {object}  dto.ActionResponse{data=dto.PositionResponse}
// @Router       /api/cargos [post]
func (h *CargoHandler) Create(c *fiber.Ctx) error {
	var in dto.PositionRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

func (h *CargoHandler) Update(c *fiber.Ctx) error {
	var in dto.PositionRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *CargoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}
