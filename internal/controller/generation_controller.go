package controller

import (
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/pkg/serverutils"
	"tg-miniapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	GetById(ctx *fiber.Ctx) error
}

type generationController struct {
	service      service.IGenerationService
	authRequired fiber.Handler
}

func NewGenerationController(service service.IGenerationService, authRequired fiber.Handler) IGenerationController {
	return &generationController{service: service, authRequired: authRequired}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generations")
	h.Use(c.authRequired)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.GetById)
}

func (c *generationController) Create(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	var req dto.CreateGenerationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	gen, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Generation queued", mapper.ToGenerationResponse(gen)))
}

func (c *generationController) List(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)
	limit, offset := paginationParams(ctx)

	rows, total, err := c.service.List(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	res := &dto.GenerationListResponse{
		Items: mapper.ToGenerationResponses(rows),
		Total: total,
	}
	return ctx.JSON(serverutils.SuccessResponse("Generations", res))
}

func (c *generationController) GetById(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid generation id"))
	}

	gen, err := c.service.GetById(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Generation", mapper.ToGenerationResponse(gen)))
}
