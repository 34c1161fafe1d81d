package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/domain"
)

// errorMapping el primer sentinel que coincide define estado y código.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrNoItemsFound, fiber.StatusUnprocessableEntity, "NO_ITEMS_FOUND"},
	{domain.ErrMalformedDocument, fiber.StatusUnprocessableEntity, "MALFORMED_DOCUMENT"},
	{domain.ErrPreconditionFailed, fiber.StatusPreconditionFailed, "PRECONDITION_FAILED"},
	{domain.ErrColumnsNotFound, fiber.StatusUnprocessableEntity, "COLUMNS_NOT_FOUND"},
	{domain.ErrEmptyMapping, fiber.StatusUnprocessableEntity, "EMPTY_MAPPING"},
	{domain.ErrUnsupportedExtension, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_EXTENSION"},
	{domain.ErrNothingToExport, fiber.StatusConflict, "NOTHING_TO_EXPORT"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
}

// writeError traduce errores de dominio a dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
