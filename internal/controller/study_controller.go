package controller

import (
	"cramwell-be/internal/pkg/serverutils"
	"cramwell-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IStudyController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	GetFlashcards(ctx *fiber.Ctx) error
	GetExamQuestions(ctx *fiber.Ctx) error
}

type studyController struct {
	service service.IStudyService
}

func NewStudyController(service service.IStudyService) IStudyController {
	return &studyController{service: service}
}

func (c *studyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/study/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":notebookId/generate/:featureType", c.Generate)
	h.Get(":notebookId/feature/:featureType", c.Get)
	h.Get(":notebookId/flashcards", c.GetFlashcards)
	h.Get(":notebookId/exam", c.GetExamQuestions)
}

func (c *studyController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	res, err := c.service.Generate(ctx.Context(), userId, notebookId, ctx.Params("featureType"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Study feature generated", res))
}

func (c *studyController) Get(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	res, err := c.service.Get(ctx.Context(), userId, notebookId, ctx.Params("featureType"))
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Study feature not generated yet"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get study feature", res))
}

func (c *studyController) GetFlashcards(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	res, err := c.service.GetFlashcards(ctx.Context(), userId, notebookId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get flashcards", res))
}

func (c *studyController) GetExamQuestions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	res, err := c.service.GetExamQuestions(ctx.Context(), userId, notebookId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get exam questions", res))
}
