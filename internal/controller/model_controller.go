package controller

import (
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/pkg/serverutils"
	"tg-miniapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IModelController interface {
	RegisterRoutes(r fiber.Router)
	ListModels(ctx *fiber.Ctx) error
}

type modelController struct {
	service      service.IAIModelService
	authRequired fiber.Handler
}

func NewModelController(service service.IAIModelService, authRequired fiber.Handler) IModelController {
	return &modelController{service: service, authRequired: authRequired}
}

func (c *modelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/models")
	h.Use(c.authRequired)
	h.Get("/", c.ListModels)
}

func (c *modelController) ListModels(ctx *fiber.Ctx) error {
	models, err := c.service.ListEnabled(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Available models", mapper.ToAIModelResponses(models)))
}
