// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID は要求IDを運ぶヘッダー名です。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID は gin.Context に保存するキーです。
	ContextRequestID = "requestID"

	maxRequestIDLen = 128
)

// RequestID reuses an incoming X-Request-ID when it looks sane, otherwise
// generates a UUID. The id is echoed on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
