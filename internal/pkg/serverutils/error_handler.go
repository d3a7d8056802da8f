package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cramwell-be/internal/dto"
)

// ErrorHandlerMiddleware maps domain errors escaping the controllers to
// HTTP status codes so controllers can just `return err`.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var batchErr *dto.BatchValidationError
		if errors.As(err, &batchErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(Response[[]dto.InvalidFile]{
				Success: false,
				Code:    fiber.StatusUnprocessableEntity,
				Message: batchErr.Error(),
				Data:    batchErr.Invalid,
			})
		}

		var inFlightErr *dto.UploadInFlightError
		if errors.As(err, &inFlightErr) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, inFlightErr.Error()))
		}

		var sessionErr *dto.SessionNotFoundError
		if errors.As(err, &sessionErr) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, sessionErr.Error()))
		}

		var noDocsErr *dto.NoDocumentsError
		if errors.As(err, &noDocsErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, noDocsErr.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
