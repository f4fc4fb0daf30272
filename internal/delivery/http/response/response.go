// Package response writes the JSON envelope shared by every API endpoint.
package response

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response. Status mirrors the HTTP status code.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
	Status  int    `json:"status"`
}

// Success writes a successful envelope. A nil data is rendered as an empty array.
func Success(c echo.Context, statusCode int, message string, data any) error {
	return c.JSON(statusCode, newEnvelope(statusCode, message, data))
}

// Error writes a failure envelope with an empty data array.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, newEnvelope(statusCode, message, nil))
}

func newEnvelope(statusCode int, message string, data any) Envelope {
	if data == nil {
		data = []any{}
	}

	return Envelope{
		Message: message,
		Data:    data,
		Status:  statusCode,
	}
}
