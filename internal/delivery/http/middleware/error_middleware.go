// Package middleware holds echo middleware specific to the HTTP store
// server.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	domainerrors "tasktrack/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Failures go
// out as the error envelope; successful responses stay raw records.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Try to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		info := &domainerrors.ErrorInfo{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
		}
		if details := appErr.Details(); details != "" {
			info.Details = details
		}
		c.JSON(appErr.HTTPCode(), domainerrors.ErrorResponse{Error: info})

		return
	}

	// Check if it's Echo's HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.Code, domainerrors.ErrorResponse{
			Error: &domainerrors.ErrorInfo{
				Code:    "HTTP_ERROR",
				Message: fmt.Sprintf("%v", httpErr.Message),
			},
		})

		return
	}

	// Default to internal error, log and return a generic envelope
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	c.JSON(http.StatusInternalServerError, domainerrors.ErrorResponse{
		Error: &domainerrors.ErrorInfo{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	})
}
