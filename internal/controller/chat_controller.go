package controller

import (
	"bufio"
	"context"
	"fmt"

	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	SetVisibility(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	Resume(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService   service.IChatService
	streamService service.IStreamService
}

func NewChatController(chatService service.IChatService, streamService service.IStreamService) IChatController {
	return &chatController{
		chatService:   chatService,
		streamService: streamService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Start)
	h.Get("", c.GetAll)
	h.Get(":id/history", c.GetHistory)
	h.Put(":id/rename", c.Rename)
	h.Put(":id/visibility", c.SetVisibility)
	h.Delete(":id", c.Delete)
	h.Post(":id/stream", c.Send)
	h.Get(":id/stream", c.Resume)
}

func (c *chatController) Start(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StartChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Start(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start chat", res))
}

func (c *chatController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.chatService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all chats", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.chatService.GetHistory(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Rename(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.RenameChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.Rename(ctx.Context(), userId, id, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename chat", nil))
}

func (c *chatController) SetVisibility(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.SetVisibilityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.SetVisibility(ctx.Context(), userId, id, *req.Public); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update chat visibility", nil))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.chatService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat", nil))
}

// Send persists the user message, kicks off detached generation, and
// attaches the response to the stream as SSE.
func (c *chatController) Send(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	streamId, err := c.streamService.Send(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return c.streamToClient(ctx, streamId)
}

// Resume reattaches to an in-flight stream. 404 when none is running is a
// normal outcome, not a fault.
func (c *chatController) Resume(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	streamId, err := c.streamService.Resume(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return c.streamToClient(ctx, streamId)
}

func (c *chatController) streamToClient(ctx *fiber.Ctx, streamId string) error {
	// The subscription must not die with the fiber request context; the
	// writer below owns its lifetime.
	subCtx, cancel := context.WithCancel(context.Background())

	frames, err := c.streamService.Subscribe(subCtx, streamId)
	if err != nil {
		cancel()
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Stream-Id", streamId)

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for frame := range frames {
			if _, err := fmt.Fprint(w, frame.SSE()); err != nil {
				// Client went away. Generation keeps running; the buffer
				// stays replayable via the resume endpoint.
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}
