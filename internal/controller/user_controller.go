package controller

import (
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/pkg/serverutils"
	"tg-miniapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	GetBalanceHistory(ctx *fiber.Ctx) error
	GetReferralInfo(ctx *fiber.Ctx) error
}

type userController struct {
	userService   service.IUserService
	ledgerService service.ILedgerService
	authRequired  fiber.Handler
}

func NewUserController(userService service.IUserService, ledgerService service.ILedgerService, authRequired fiber.Handler) IUserController {
	return &userController{
		userService:   userService,
		ledgerService: ledgerService,
		authRequired:  authRequired,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user")
	h.Use(c.authRequired)
	h.Get("/me", c.GetProfile)
	h.Get("/balance/history", c.GetBalanceHistory)
	h.Get("/referral", c.GetReferralInfo)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	user, err := c.userService.GetById(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", mapper.ToUserResponse(user)))
}

func (c *userController) GetBalanceHistory(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)
	limit, offset := paginationParams(ctx)

	rows, total, err := c.ledgerService.GetHistory(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	res := &dto.BalanceHistoryListResponse{
		Items: mapper.ToBalanceHistoryResponses(rows),
		Total: total,
	}
	return ctx.JSON(serverutils.SuccessResponse("Balance history", res))
}

func (c *userController) GetReferralInfo(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	res, err := c.userService.GetReferralInfo(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Referral info", res))
}

// requestUserId reads the user id set by the auth middleware.
func requestUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func paginationParams(ctx *fiber.Ctx) (limit, offset int) {
	limit = ctx.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	page := ctx.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
