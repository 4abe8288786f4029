package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestID is the gin context key the request logger and recovery
// middleware read the id from.
const ContextRequestID = "request_id"

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id. An id supplied by the caller is
// kept so traces line up across the upstream hop; otherwise a fresh UUID is
// issued. The id is echoed back in the response header either way.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
