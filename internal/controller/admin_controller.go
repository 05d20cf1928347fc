package controller

import (
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/pkg/serverutils"
	"tg-miniapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListUsers(ctx *fiber.Ctx) error
	BanUser(ctx *fiber.Ctx) error
	SetBalance(ctx *fiber.Ctx) error
	ListModels(ctx *fiber.Ctx) error
	SetModelPrice(ctx *fiber.Ctx) error
	SetModelEnabled(ctx *fiber.Ctx) error
	SeedModels(ctx *fiber.Ctx) error
	GetStats(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
	modelService service.IAIModelService
	authRequired fiber.Handler
}

func NewAdminController(adminService service.IAdminService, modelService service.IAIModelService, authRequired fiber.Handler) IAdminController {
	return &adminController{
		adminService: adminService,
		modelService: modelService,
		authRequired: authRequired,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(c.authRequired)
	h.Use(serverutils.AdminOnly)

	h.Get("/users", c.ListUsers)
	h.Post("/users/ban", c.BanUser)
	h.Post("/users/balance", c.SetBalance)

	h.Get("/models", c.ListModels)
	h.Put("/models/price", c.SetModelPrice)
	h.Put("/models/enabled", c.SetModelEnabled)
	h.Post("/models/seed", c.SeedModels)

	h.Get("/stats", c.GetStats)
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	limit, offset := paginationParams(ctx)

	users, total, err := c.adminService.ListUsers(ctx.Context(), ctx.Query("search"), limit, offset)
	if err != nil {
		return err
	}

	items := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		items[i] = mapper.ToUserResponse(u)
	}
	return ctx.JSON(serverutils.SuccessResponse("Users", fiber.Map{"items": items, "total": total}))
}

func (c *adminController) BanUser(ctx *fiber.Ctx) error {
	var req dto.AdminBanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.adminService.SetBanned(ctx.Context(), req.UserId, req.Banned); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Ban flag updated", nil))
}

func (c *adminController) SetBalance(ctx *fiber.Ctx) error {
	var req dto.AdminSetBalanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.adminService.SetBalance(ctx.Context(), req.UserId, req.Balance); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Balance updated", nil))
}

func (c *adminController) ListModels(ctx *fiber.Ctx) error {
	models, err := c.modelService.ListAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Models", mapper.ToAIModelResponses(models)))
}

func (c *adminController) SetModelPrice(ctx *fiber.Ctx) error {
	var req dto.AdminModelPriceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.modelService.UpdatePrice(ctx.Context(), req.Code, req.PriceTokens); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Price updated", nil))
}

func (c *adminController) SetModelEnabled(ctx *fiber.Ctx) error {
	var req dto.AdminModelEnableRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.modelService.SetEnabled(ctx.Context(), req.Code, req.Enabled); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Model toggled", nil))
}

func (c *adminController) SeedModels(ctx *fiber.Ctx) error {
	if err := c.modelService.SeedDefaults(ctx.Context()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Catalog reconciled", nil))
}

func (c *adminController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Stats", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	limit, offset := paginationParams(ctx)

	logs, err := c.adminService.GetLogs(ctx.Query("level"), limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs", logs))
}
