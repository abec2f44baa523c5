package middleware

import (
	"github.com/gofiber/fiber/v2"

	"taskly/pkg/logger"
	"taskly/pkg/utils"
)

// ErrorHandler is the Fiber fallback for errors that escape the handlers.
// Internal detail stays in the logs; the client gets the envelope only.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusUnauthorized:
				errCode = utils.ErrCodeUnauthorized
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			case fiber.StatusConflict:
				errCode = utils.ErrCodeConflict
			}
		}

		logger.ErrorContext(c.UserContext(), "Unhandled request error", "error", err, "status", code)

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
