package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the standard JSON error envelope used by the global
// error handler and the API 404 handler.
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// AdminErrorStruct defines the schema for admin endpoint failures
type AdminErrorStruct struct {
	Error string `json:"error"`
}

// WriteSuccessStruct defines the schema for content write success responses
type WriteSuccessStruct struct {
	Success bool `json:"success"`
}

// SyncSuccessStruct defines the schema for mirror sync success responses
type SyncSuccessStruct struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
