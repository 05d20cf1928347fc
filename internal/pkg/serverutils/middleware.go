package serverutils

import (
	"errors"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/telegram"
	"tg-miniapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NewAuthMiddleware authenticates Mini App requests. The preferred path is
// the raw init data header signed by Telegram; the Bearer JWT issued by the
// token endpoint is the fallback for clients that cache a session.
func NewAuthMiddleware(authService service.IAuthService, userService service.IUserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		initData := ctx.Get("X-Telegram-Init-Data")
		if initData != "" {
			user, err := authService.AuthenticateInitData(ctx.UserContext(), initData)
			if err != nil {
				return authError(ctx, err)
			}
			ctx.Locals("user_id", user.Id.String())
			ctx.Locals("is_admin", user.IsAdmin)
			return ctx.Next()
		}

		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing credentials"))
		}

		userId, err := authService.ParseToken(authHeader[7:])
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		user, err := userService.GetById(ctx.UserContext(), userId)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Unknown user"))
		}
		if user.IsBanned {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Account banned"))
		}

		ctx.Locals("user_id", user.Id.String())
		ctx.Locals("is_admin", user.IsAdmin)
		return ctx.Next()
	}
}

// AdminOnly requires a preceding auth middleware to have set is_admin.
func AdminOnly(ctx *fiber.Ctx) error {
	isAdmin, _ := ctx.Locals("is_admin").(bool)
	if !isAdmin {
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Admin access required"))
	}
	return ctx.Next()
}

func authError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entity.ErrUserBanned):
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Account banned"))
	case errors.Is(err, telegram.ErrExpiredInitData):
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Init data expired"))
	case errors.Is(err, telegram.ErrInvalidInitData):
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid init data"))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Authentication failed"))
	}
}

// ErrorHandlerMiddleware maps errors bubbling out of handlers to HTTP
// responses: domain sentinels get their status codes, everything else is a
// 500 with the message withheld.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, err)
	}
}

func writeError(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	switch {
	case errors.Is(err, entity.ErrInsufficientBalance):
		return ctx.Status(fiber.StatusPaymentRequired).JSON(ErrorResponse(402, "Insufficient balance"))
	case errors.Is(err, entity.ErrUnknownModel), errors.Is(err, entity.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, err.Error()))
	case errors.Is(err, entity.ErrModelDisabled),
		errors.Is(err, entity.ErrMissingInput),
		errors.Is(err, entity.ErrInvalidInput):
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
	case errors.Is(err, entity.ErrUserBanned):
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Account banned"))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
	}
}
