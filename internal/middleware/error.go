package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:          "BAD_REQUEST",
	fiber.StatusUnauthorized:        "UNAUTHORIZED",
	fiber.StatusForbidden:           "FORBIDDEN",
	fiber.StatusNotFound:            "NOT_FOUND",
	fiber.StatusConflict:            "CONFLICT",
	fiber.StatusGone:                "GONE",
	fiber.StatusUnprocessableEntity: "VALIDATION_ERROR",
}

// NewErrorHandler renders every error as ErrorResponse. Errors that are not
// *fiber.Error become a 500 and are logged with their trace id.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorCode := "INTERNAL_ERROR"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
			if known, ok := errorCodes[code]; ok {
				errorCode = known
			} else if code < fiber.StatusInternalServerError {
				errorCode = "ERROR"
			}
		}

		traceID := uuid.New().String()[:8]

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("trace_id", traceID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode,
			Message: message,
			TraceID: traceID,
		})
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Gone(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusGone, message)
}
