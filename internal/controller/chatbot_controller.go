package controller

import (
	"cramwell-be/internal/dto"
	"cramwell-be/internal/pkg/serverutils"
	"cramwell-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	ResumeOrCreate(ctx *fiber.Ctx) error
	CreateNew(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	ListActive(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatService
}

func NewChatbotController(service service.IChatService) IChatbotController {
	return &chatbotController{service: service}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session/:notebookId/resume", c.ResumeOrCreate)
	h.Post("session/:notebookId/new", c.CreateNew)
	h.Post("session/deactivate", c.Deactivate)
	h.Get("session/:notebookId/active", c.ListActive)
	h.Get("history/:sessionId", c.GetHistory)
	h.Post("chat", c.SendChat)
}

func (c *chatbotController) ResumeOrCreate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	res, err := c.service.ResumeOrCreate(ctx.Context(), userId, notebookId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session resumed", res))
}

func (c *chatbotController) CreateNew(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	res, err := c.service.CreateNew(ctx.Context(), userId, notebookId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatbotController) Deactivate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.DeactivateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Deactivate(ctx.Context(), userId, req.ChatSessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session deactivated", nil))
}

func (c *chatbotController) ListActive(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	res, err := c.service.ListActive(ctx.Context(), userId, notebookId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get active sessions", res))
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.service.GetHistory(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}
