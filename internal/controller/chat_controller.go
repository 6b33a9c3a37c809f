package controller

import (
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/apperror"
	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.SendChat)
	r.Get("/messages", c.GetMessages)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewInvalidInput("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.SendChatResponse{
		Success: true,
		Message: res,
	})
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetMessages(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(dto.ListMessagesResponse{Messages: res})
}
