package utils

import (
	"github.com/gin-gonic/gin"
)

const whiteboardIdKey = "whiteboard_id"

func SetWhiteboardIdToContext(ctx *gin.Context, whiteboardId string) {
	ctx.Set(whiteboardIdKey, whiteboardId)
}

// GetWhiteboardIdFromContext returns the id stored by the whiteboard id
// middleware, or the raw path parameter when the middleware did not run.
func GetWhiteboardIdFromContext(ctx *gin.Context) string {
	if id := ctx.GetString(whiteboardIdKey); id != "" {
		return id
	}
	return ctx.Param("id")
}
