package controller

import (
	"fmt"

	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type authController struct {
	service   service.IAuthService
	clientURL string
}

func NewAuthController(service service.IAuthService, clientURL string) IAuthController {
	return &authController{service: service, clientURL: clientURL}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Get("/login", c.Login)
	h.Get("/callback", c.Callback)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	res, err := c.service.GetLoginURL()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Redirect(res.AuthURL)
}

func (c *authController) Callback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing code"))
	}

	res, err := c.service.HandleCallback(ctx.Context(), code)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	// Hand the session token back to the client app.
	return ctx.Redirect(fmt.Sprintf("%s/auth/complete?token=%s", c.clientURL, res.Token))
}
