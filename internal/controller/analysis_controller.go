package controller

import (
	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/pkg/serverutils"
	"github.com/cristiansanchez/indice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Analyze(ctx *fiber.Ctx) error
}

type analysisController struct {
	service service.IAnalysisService
}

func NewAnalysisController(service service.IAnalysisService) IAnalysisController {
	return &analysisController{service: service}
}

func (c *analysisController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/analysis", middleware...)
	h.Post("/", c.Analyze)
}

func (c *analysisController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalysisRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AnalyzeResource(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Technical analysis generated", res))
}
