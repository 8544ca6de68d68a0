package controller

import (
	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICredentialController interface {
	RegisterRoutes(r fiber.Router)
	Set(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type credentialController struct {
	service service.ICredentialService
}

func NewCredentialController(service service.ICredentialService) ICredentialController {
	return &credentialController{service: service}
}

func (c *credentialController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credential/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put("", c.Set)
	h.Get("", c.GetAll)
	h.Delete(":provider_id", c.Delete)
}

func (c *credentialController) Set(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SetCredentialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Set(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set credential", res))
}

func (c *credentialController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all credentials", res))
}

func (c *credentialController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	providerId := ctx.Params("provider_id")

	if err := c.service.Delete(ctx.Context(), userId, providerId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete credential", nil))
}
