package middleware

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smilecare/clinic-api/pkg/errors"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *errors.AppError
		if stderrors.As(lastErr.Err, &appErr) {
			message = appErr.Message
			switch appErr.Code {
			case errors.ErrNotFound:
				status = http.StatusNotFound
			case errors.ErrBadRequest:
				status = http.StatusBadRequest
			case errors.ErrUnauthorized:
				status = http.StatusUnauthorized
			case errors.ErrForbidden:
				status = http.StatusForbidden
			case errors.ErrConflict:
				status = http.StatusConflict
			}
		}

		c.JSON(status, ErrorResponse{
			Code:    status,
			Message: message,
			TraceID: requestID,
		})
	}
}
