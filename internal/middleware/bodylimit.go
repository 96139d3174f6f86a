package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/pkg/response"
)

// BodyLimit rejects write requests whose body exceeds max bytes. Declared
// lengths are checked up front; chunked bodies are cut off while reading.
func BodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		if c.Request.ContentLength > max {
			msg := "Request body too large"
			if strings.HasPrefix(c.ContentType(), "multipart/") {
				msg = "Image exceeds the maximum upload size"
			}
			response.BadRequest(c, msg)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
