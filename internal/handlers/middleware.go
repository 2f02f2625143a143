package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"socketBoard/internal/errs"
	"socketBoard/internal/models"
	"socketBoard/internal/msgs"
	"socketBoard/internal/utils"
)

// WhiteboardIdMiddleware rejects requests whose :id is not a board uuid.
func WhiteboardIdMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := uuid.Parse(ctx.Param("id"))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: msgs.MsgOperationFailed,
				Errors:  []error{errs.ErrInvalidBoardId},
			})
			return
		}
		utils.SetWhiteboardIdToContext(ctx, id.String())
		ctx.Next()
	}
}
