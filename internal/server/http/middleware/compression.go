package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest swaps a gzip request body for its plain form so order
// payload binding downstream never sees the encoding.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(encoding, "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		plain, err := gzip.NewReader(compressed)
		if err != nil {
			// A declared gzip body that does not decode is a client error.
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer plain.Close()
		defer compressed.Close()

		c.Request.Body = io.NopCloser(plain)
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
