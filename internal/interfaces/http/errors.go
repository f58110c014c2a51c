package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
)

// apiError describe cómo se expone un error de dominio.
type apiError struct {
	status  int
	code    string
	message string
}

// errorTable orden importa: el primero que coincide con errors.Is gana.
var errorTable = []struct {
	target error
	apiError
}{
	{domain.ErrInsufficientStock, apiError{fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"}},
	{domain.ErrNegativeStock, apiError{fiber.StatusConflict, "NEGATIVE_STOCK", "la operación dejaría el stock en negativo"}},
	{domain.ErrEmailAlreadyExists, apiError{fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"}},
	{domain.ErrDuplicate, apiError{fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"}},
	{domain.ErrConflict, apiError{fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual del recurso"}},
	{domain.ErrUserNotFound, apiError{fiber.StatusNotFound, "NOT_FOUND", "usuario no encontrado"}},
	{domain.ErrNotFound, apiError{fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"}},
	{domain.ErrUnauthorized, apiError{fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"}},
	{domain.ErrForbidden, apiError{fiber.StatusForbidden, "FORBIDDEN", "cuenta inactiva o sin permisos"}},
	{domain.ErrInvalidInput, apiError{fiber.StatusBadRequest, "VALIDATION", "datos inválidos"}},
}

// writeError traduce err a status + dto.ErrorResponse. Lo no mapeado es INTERNAL (500)
// y el detalle queda en el log, no en la respuesta.
func writeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: verr.Fields,
		})
	}
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: e.message})
		}
	}
	c.Locals(LocalError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// ErrorHandler para fiber.Config: errores que escapan de los handlers (404 de ruta, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			code = "INVALID_BODY"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
