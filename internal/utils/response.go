package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the envelope used by operational endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// ErrorResponse is the error body of the activity endpoints. Browser clients read the detail field.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SendSuccess sends a successful enveloped JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendJSON writes payload as-is with the provided status code.
func SendJSON(c *fiber.Ctx, status int, payload interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(payload)
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, detail string) error {
	if detail == "" {
		detail = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Detail: detail})
}
