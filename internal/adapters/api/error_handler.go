package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/ports"
	errorspkg "weatherdash.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	msgInternal           = "Internal server error"
	msgWeatherUnavailable = "Weather service unavailable"
)

// errorStatus maps an application error onto the status and the message shown to clients.
// Only validation and not-found messages are safe to echo back.
func errorStatus(err error) (int, string, bool) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, msgInternal, false
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		return http.StatusBadRequest, appErr.Message, true
	case errorspkg.NotFoundError:
		return http.StatusNotFound, appErr.Message, true
	case errorspkg.ExternalAPIError:
		return http.StatusServiceUnavailable, msgWeatherUnavailable, true
	default:
		return http.StatusInternalServerError, msgInternal, true
	}
}

// handleError writes the JSON error body and logs server-side failures with the request id
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	status, message, typed := errorStatus(err)

	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("Request failed",
			ports.F("path", c.FullPath()),
			ports.F("status", status),
			ports.F("typed", typed),
			ports.F(requestIDKey, c.GetString(requestIDKey)),
			ports.F("error", err),
		)
	}

	c.JSON(status, ErrorResponse{Error: message})
}
