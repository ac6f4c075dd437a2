package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	apperrors "github.com/jwalitptl/clinic-admin/pkg/errors"
)

// ErrorResponse is the error envelope with optional field level detail.
type ErrorResponse struct {
	handler.Response
	TraceID string            `json:"trace_id,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// ErrorHandler renders the last error recorded with c.Error, unless the
// handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only handle errors if they exist
		if len(c.Errors) == 0 {
			return
		}

		traceID := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			event := log.Warn()
			if apperrors.StatusOf(e.Err) >= 500 {
				event = log.Error()
			}
			event.
				Err(e.Err).
				Str("request_id", traceID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last().Err
		status := apperrors.StatusOf(lastErr)

		message := "internal server error"
		var appErr *apperrors.AppError
		if errors.As(lastErr, &appErr) {
			message = appErr.Message
		}

		resp := ErrorResponse{
			Response: *handler.NewErrorResponse(message),
			TraceID:  traceID,
		}
		var verrs validator.ValidationErrors
		if errors.As(lastErr, &verrs) {
			resp.Errors = translate(verrs)
		}

		c.AbortWithStatusJSON(status, resp)
	}
}
