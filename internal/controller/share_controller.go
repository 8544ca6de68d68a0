package controller

import (
	"os"

	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IShareController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

// shareController serves public chat reads. No JWT middleware: anonymous
// callers are welcome, but a valid token upgrades the view with owner info.
type shareController struct {
	chatService service.IChatService
}

func NewShareController(chatService service.IChatService) IShareController {
	return &shareController{chatService: chatService}
}

func (c *shareController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/share/v1")
	h.Get(":id", c.Show)
}

func (c *shareController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFound("Chat not found")
	}

	viewerId := optionalUserId(ctx)

	res, svcErr := c.chatService.GetShared(ctx.Context(), viewerId, id)
	if svcErr != nil {
		return svcErr
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get shared chat", res))
}

// optionalUserId extracts the caller's identity when a valid bearer token is
// present and returns uuid.Nil otherwise.
func optionalUserId(ctx *fiber.Ctx) uuid.UUID {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return uuid.Nil
	}

	token, err := jwt.Parse(authHeader[7:], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil
	}
	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil
	}
	return userId
}
