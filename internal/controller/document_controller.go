package controller

import (
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/apperror"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Get("/documents", c.List)
	r.Delete("/documents/:id", c.Delete)
	r.Delete("/documents", c.Clear)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.NewInvalidInput("No file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperror.NewInternal(err)
	}
	defer file.Close()

	res, err := c.documentService.Upload(ctx.UserContext(), &dto.UploadDocumentRequest{
		FileName:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:      fileHeader.Size,
		Content:   file,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(dto.UploadDocumentResponse{
		Success:  true,
		Document: res,
	})
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.documentService.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(dto.ListDocumentsResponse{Documents: res})
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	if err := c.documentService.Remove(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(dto.SuccessOnlyResponse{Success: true})
}

func (c *documentController) Clear(ctx *fiber.Ctx) error {
	if err := c.documentService.Clear(ctx.UserContext()); err != nil {
		return err
	}

	return ctx.JSON(dto.SuccessOnlyResponse{Success: true})
}
