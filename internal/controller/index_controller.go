package controller

import (
	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/pkg/render"
	"github.com/cristiansanchez/indice/internal/pkg/serverutils"
	"github.com/cristiansanchez/indice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIndexController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Generate(ctx *fiber.Ctx) error
	Enrich(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type indexController struct {
	indexService      service.IIndexService
	enrichmentService service.IEnrichmentService
}

func NewIndexController(indexService service.IIndexService, enrichmentService service.IEnrichmentService) IIndexController {
	return &indexController{
		indexService:      indexService,
		enrichmentService: enrichmentService,
	}
}

func (c *indexController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/index", middleware...)
	h.Post("/", c.Generate)
	h.Post("/enrich", c.Enrich)
	h.Post("/export", c.Export)
}

func (c *indexController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateIndexRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.indexService.GenerateIndex(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Learning index generated", res))
}

func (c *indexController) Enrich(ctx *fiber.Ctx) error {
	var req dto.EnrichRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.enrichmentService.EnrichModules(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Modules enriched", res))
}

// Export returns the Markdown rendering used for copy-to-clipboard.
func (c *indexController) Export(ctx *fiber.Ctx) error {
	var index entity.LearningIndex
	if err := ctx.BodyParser(&index); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := index.Normalize(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return ctx.SendString(render.Markdown(&index))
}
