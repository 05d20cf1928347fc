package controller

import (
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/pkg/serverutils"
	"tg-miniapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	GetPackages(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	HandleWebhook(ctx *fiber.Ctx) error
	GetStatus(ctx *fiber.Ctx) error
}

type paymentController struct {
	service      service.IPaymentService
	authRequired fiber.Handler
}

func NewPaymentController(service service.IPaymentService, authRequired fiber.Handler) IPaymentController {
	return &paymentController{service: service, authRequired: authRequired}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")

	// The gateway calls the webhook directly; it authenticates by signature.
	h.Post("/webhook", c.HandleWebhook)

	h.Get("/packages", c.GetPackages)

	auth := h.Group("")
	auth.Use(c.authRequired)
	auth.Post("/checkout", c.Checkout)
	auth.Get("/:id", c.GetStatus)
}

func (c *paymentController) GetPackages(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Token packages", c.service.GetPackages(ctx.Context())))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) HandleWebhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification body"))
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		// Midtrans retries on non-200; signature failures must not be retried.
		if err.Error() == "invalid signature" {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Invalid signature"))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

func (c *paymentController) GetStatus(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid payment id"))
	}

	res, err := c.service.GetStatus(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment status", res))
}
