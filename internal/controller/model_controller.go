package controller

import (
	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/mapper"
	"github.com/cristiansanchez/indice/internal/pkg/serverutils"
	"github.com/cristiansanchez/indice/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ModelCatalog lists selectable models. Implemented by factory.Dispatcher.
type ModelCatalog interface {
	Catalog() []llm.ModelInfo
	DefaultModel() string
}

type IModelController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	List(ctx *fiber.Ctx) error
}

type modelController struct {
	catalog ModelCatalog
	mapper  *mapper.LearningMapper
}

func NewModelController(catalog ModelCatalog, mapper *mapper.LearningMapper) IModelController {
	return &modelController{catalog: catalog, mapper: mapper}
}

func (c *modelController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/models", middleware...)
	h.Get("/", c.List)
}

func (c *modelController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Models retrieved", dto.ModelsResponse{
		Default: c.catalog.DefaultModel(),
		Models:  c.mapper.ToModelResponses(c.catalog.Catalog()),
	}))
}
