package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/todozero/todozero/internal/types"
)

const maxRequestIDLength = 128

// RequestID keeps a client supplied X-Request-ID or assigns a fresh one, and
// echoes it back on the response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(types.RequestIDHeader)

		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		ctx.Set(types.ContextRequestIDKey, id)
		ctx.Header(types.RequestIDHeader, id)
		ctx.Next()
	}
}
