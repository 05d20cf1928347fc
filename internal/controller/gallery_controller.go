package controller

import (
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/pkg/serverutils"
	"tg-miniapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGalleryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	SetFavorite(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type galleryController struct {
	service      service.IGalleryService
	authRequired fiber.Handler
}

func NewGalleryController(service service.IGalleryService, authRequired fiber.Handler) IGalleryController {
	return &galleryController{service: service, authRequired: authRequired}
}

func (c *galleryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gallery")
	h.Use(c.authRequired)
	h.Get("/", c.List)
	h.Put("/:id/favorite", c.SetFavorite)
	h.Delete("/:id", c.Delete)
}

func (c *galleryController) List(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)
	limit, offset := paginationParams(ctx)

	filter := service.GalleryFilter{
		FileType:      ctx.Query("type"),
		FavoritesOnly: ctx.QueryBool("favorites", false),
		Limit:         limit,
		Offset:        offset,
	}

	items, total, err := c.service.List(ctx.Context(), userId, filter)
	if err != nil {
		return err
	}

	res := &dto.GalleryListResponse{
		Items: mapper.ToGalleryItemResponses(items),
		Total: total,
	}
	return ctx.JSON(serverutils.SuccessResponse("Gallery", res))
}

func (c *galleryController) SetFavorite(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid gallery item id"))
	}

	var req struct {
		Favorite bool `json:"favorite"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := c.service.SetFavorite(ctx.Context(), userId, id, req.Favorite); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Favorite updated", nil))
}

func (c *galleryController) Delete(ctx *fiber.Ctx) error {
	userId := requestUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid gallery item id"))
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Gallery item deleted", nil))
}
