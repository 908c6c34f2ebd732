package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/motoworld/storefront/internal/interfaces/http/dto"
)

// BodySizeLimit rejects request bodies larger than maxBytes. Requests
// with an honest Content-Length are refused up front; the reader is
// capped either way.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Request body too large"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
