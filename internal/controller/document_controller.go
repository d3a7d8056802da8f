package controller

import (
	"encoding/json"
	"io"

	"cramwell-be/internal/dto"
	"cramwell-be/internal/pkg/serverutils"
	"cramwell-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":notebookId/upload", c.Upload)
	h.Get(":notebookId", c.GetAll)
	h.Delete(":id", c.Delete)
}

// Upload accepts a multipart batch: repeated "files" parts plus an
// optional "review" part holding review metadata JSON.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	documentType := ctx.Query("document_type")
	if documentType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "document_type query parameter is required")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Multipart form body is required")
	}

	req := dto.UploadBatchRequest{
		NotebookId:   notebookId,
		DocumentType: documentType,
	}

	for _, header := range form.File["files"] {
		file, err := header.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unreadable file part: "+header.Filename)
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unreadable file part: "+header.Filename)
		}
		req.Files = append(req.Files, dto.UploadFile{
			Name:    header.Filename,
			Size:    int64(len(content)),
			Content: content,
		})
	}

	if values := form.Value["review"]; len(values) > 0 {
		var review dto.ReviewMetadataRequest
		if err := json.Unmarshal([]byte(values[0]), &review); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid review metadata JSON")
		}
		if err := serverutils.ValidateRequest(review); err != nil {
			return err
		}
		req.Review = &review
	}

	res, err := c.service.SubmitBatch(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Upload batch completed", res))
}

func (c *documentController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	res, err := c.service.GetAll(ctx.Context(), userId, notebookId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Document deleted", nil))
}
