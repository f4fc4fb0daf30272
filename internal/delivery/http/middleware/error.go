// Package middleware contains the API-specific echo middleware: central error handling and the request gate.
package middleware

import (
	"log/slog"
	"net/http"

	"tracker/internal/delivery/http/response"
	domainerrors "tracker/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError converts every error returned by a handler or middleware into the envelope.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logger.Error("Request failed",
				slog.Any("error", err),
				slog.String("code", appErr.ErrorCode()),
				slog.String("path", c.Request().URL.Path),
			)
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = response.Error(c, httpErr.Code, httpErrorMessage(httpErr))

		return
	}

	// Unexpected failures surface their text so that they can be diagnosed from the client.
	m.logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.Error(c, http.StatusInternalServerError, err.Error())
}

func httpErrorMessage(httpErr *echo.HTTPError) string {
	switch httpErr.Code {
	case http.StatusMethodNotAllowed:
		return domainerrors.ErrMethodNotAllowed.Message()
	case http.StatusNotFound:
		return "Error : Not found"
	}

	if msg, ok := httpErr.Message.(string); ok {
		return "Error : " + msg
	}

	return "Error : " + http.StatusText(httpErr.Code)
}
