package controller

import (
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/pkg/serverutils"
	"tg-miniapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	UploadFile(ctx *fiber.Ctx) error
	UploadBase64(ctx *fiber.Ctx) error
}

type uploadController struct {
	service      service.IUploadService
	authRequired fiber.Handler
}

func NewUploadController(service service.IUploadService, authRequired fiber.Handler) IUploadController {
	return &uploadController{service: service, authRequired: authRequired}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload")
	h.Use(c.authRequired)
	h.Post("/file", c.UploadFile)
	h.Post("/base64", c.UploadBase64)
}

func (c *uploadController) UploadFile(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "File is required"))
	}

	res, err := c.service.SaveMultipart(ctx.Context(), userId, fileHeader)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("File uploaded", res))
}

func (c *uploadController) UploadBase64(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	var req dto.Base64UploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.SaveBase64(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("File uploaded", res))
}
