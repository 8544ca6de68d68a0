package controller

import (
	"io"

	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/pkg/serverutils"
	"ai-chathub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	GenerateImage(ctx *fiber.Ctx) error
	GetAllImages(ctx *fiber.Ctx) error
}

type fileController struct {
	attachmentService service.IAttachmentService
	imageService      service.IImageService
}

func NewFileController(attachmentService service.IAttachmentService, imageService service.IImageService) IFileController {
	return &fileController{
		attachmentService: attachmentService,
		imageService:      imageService,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/file/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/upload", c.Upload)
	h.Post("/image", c.GenerateImage)
	h.Get("/image", c.GetAllImages)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewBadRequest("File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.NewBadRequest("Cannot read uploaded file")
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return serverutils.NewBadRequest("Cannot read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := c.attachmentService.Upload(ctx.Context(), userId, fileHeader.Filename, contentType, payload)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload attachment", res))
}

func (c *fileController) GenerateImage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GenerateImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.imageService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate images", res))
}

func (c *fileController) GetAllImages(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.imageService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get generated images", res))
}
