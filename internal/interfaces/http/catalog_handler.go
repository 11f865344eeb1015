package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-comercial/internal/application/catalog"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
)

// CatalogHandler grupos, subgrupos, produtos e locais.
type CatalogHandler struct {
	groups    *catalog.GroupUseCase
	products  *catalog.ProductUseCase
	locations *catalog.LocationUseCase
}

// NewCatalogHandler constrói o handler do cadastro básico.
func NewCatalogHandler(groups *catalog.GroupUseCase, products *catalog.ProductUseCase, locations *catalog.LocationUseCase) *CatalogHandler {
	return &CatalogHandler{groups: groups, products: products, locations: locations}
}

// ListGroups godoc
// @Summary      Listar grupos
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResponse{data=[]dto.GroupResponse}
// @Router       /api/grupos [get]
func (h *CatalogHandler) ListGroups(c *fiber.Ctx) error {
	out, err := h.groups.ListGroups(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// CreateGroup godoc
// @Summary      Criar grupo
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GroupRequest  true  "cod, nome"
// @Success      201   {object}  dto.ActionResponse{data=dto.GroupResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/grupos [post]
func (h *CatalogHandler) CreateGroup(c *fiber.Ctx) error {
	var in dto.GroupRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.groups.CreateGroup(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

func (h *CatalogHandler) UpdateGroup(c *fiber.Ctx) error {
	var in dto.GroupRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.groups.UpdateGroup(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *CatalogHandler) DeleteGroup(c *fiber.Ctx) error {
	if err := h.groups.DeleteGroup(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

// ListSubgroups godoc
// @Summary      Listar subgrupos
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        group_id  query  string  false  "Filtra pelo grupo"
// @Success      200  {object}  dto.ActionResponse{data=[]dto.GroupResponse}
// @Router       /api/subgrupos [get]
func (h *CatalogHandler) ListSubgroups(c *fiber.Ctx) error {
	out, err := h.groups.ListSubgroups(c.UserContext(), c.Query("group_id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *CatalogHandler) CreateSubgroup(c *fiber.Ctx) error {
	var in dto.GroupRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.groups.CreateSubgroup(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

func (h *CatalogHandler) UpdateSubgroup(c *fiber.Ctx) error {
	var in dto.GroupRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.groups.UpdateSubgroup(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *CatalogHandler) DeleteSubgroup(c *fiber.Ctx) error {
	if err := h.groups.DeleteSubgroup(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

// ListProducts godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Busca por nome ou código"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ActionResponse{data=[]dto.ProductResponse}
// @Router       /api/produtos [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if valid, err := bindQuery(c, &page); !valid {
		return err
	}
	out, err := h.products.List(c.UserContext(), page)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// GetProduct godoc
// @Summary      Obter produto
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.ActionResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ActionResponse
// @Router       /api/produtos/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// CreateProduct godoc
// @Summary      Criar produto
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Dados do produto"
// @Success      201   {object}  dto.ActionResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/produtos [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.products.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.products.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}

// ListLocations godoc
// @Summary      Listar locais
// @Tags         locais
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResponse{data=[]dto.LocationResponse}
// @Router       /api/locais [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.locations.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.locations.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

func (h *CatalogHandler) UpdateLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if valid, err := bindBody(c, &in); !valid {
		return err
	}
	out, err := h.locations.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func (h *CatalogHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.locations.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondEmpty(c)
}
