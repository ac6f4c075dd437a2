package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
)

// Recovery turns a handler panic into a 500 envelope. The panic is logged
// through the request scoped logger, so it carries the request id when
// RequestID ran first.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestLogger(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Str("client_ip", c.ClientIP()).
				Msg("clinic request panicked")

			resp := ErrorResponse{
				Response: *handler.NewErrorResponse("internal server error"),
				TraceID:  c.GetString(ContextRequestID),
			}
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		}()
		c.Next()
	}
}
