package controller

import (
	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProviderController interface {
	RegisterRoutes(r fiber.Router)
	RegisterOllama(ctx *fiber.Ctx) error
	RegisterOpenRouter(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	GetComposerModels(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	DeleteOpenRouter(ctx *fiber.Ctx) error
}

type providerController struct {
	service service.IProviderService
}

func NewProviderController(service service.IProviderService) IProviderController {
	return &providerController{service: service}
}

func (c *providerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/provider/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/ollama", c.RegisterOllama)
	h.Post("/openrouter", c.RegisterOpenRouter)
	h.Get("", c.GetAll)
	h.Get("/models", c.GetComposerModels)
	// openrouter model names contain slashes, the wildcard spans segments
	h.Delete("/openrouter/+", c.DeleteOpenRouter)
	h.Delete("/:id", c.Delete)
}

func (c *providerController) RegisterOllama(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.RegisterOllamaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RegisterOllama(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success register ollama provider", res))
}

func (c *providerController) RegisterOpenRouter(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.RegisterOpenRouterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RegisterOpenRouter(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success register openrouter model", res))
}

func (c *providerController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all custom providers", res))
}

func (c *providerController) GetComposerModels(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.ComposerModels(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get composer models", res))
}

func (c *providerController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFound("Provider not found")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete custom provider", nil))
}

func (c *providerController) DeleteOpenRouter(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	name := ctx.Params("+")

	if err := c.service.DeleteOpenRouterByName(ctx.Context(), userId, name); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete openrouter model", nil))
}
