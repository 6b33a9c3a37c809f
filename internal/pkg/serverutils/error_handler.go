package serverutils

import (
	"errors"

	"ai-docchat-be/internal/pkg/apperror"
	"ai-docchat-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by handlers into the
// JSON error envelope. Causes of 5xx errors are logged and never sent.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

// WriteError writes err as the error envelope. It is also used as the
// fiber.Config ErrorHandler so errors raised outside the middleware chain
// (body limit, routing) share the same shape.
func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	code := fiber.StatusInternalServerError
	kind := apperror.KindInternal
	message := "Internal server error"

	if appErr, ok := apperror.As(err); ok {
		code = appErr.Code
		kind = appErr.Kind
		message = appErr.Message
	} else {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
			if code < fiber.StatusInternalServerError {
				kind = apperror.KindInvalidInput
			}
		}
	}

	if code >= fiber.StatusInternalServerError && log != nil {
		log.Error("Server", "Request failed", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": code,
			"kind":   string(kind),
			"error":  err.Error(),
		})
	}

	return ctx.Status(code).JSON(TypedErrorResponse(code, string(kind), message))
}
