package handlers

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"socketBoard/internal/errs"
	"socketBoard/internal/export"
	"socketBoard/internal/models"
	"socketBoard/internal/models/whiteboard"
	"socketBoard/internal/msgs"
	"socketBoard/internal/services"
	"socketBoard/internal/utils"
	"socketBoard/internal/validators"
)

// HealthCheck is one dependency reported by GET /health.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type RestHandler struct {
	whiteboardService  *services.WhiteboardService
	presenceService    *services.PresenceService
	fileManagerService *services.FileManagerService
	maxUploadBytes     int64
	healthChecks       []HealthCheck
}

func NewRestHandler(
	whiteboardService *services.WhiteboardService,
	presenceService *services.PresenceService,
	fileManagerService *services.FileManagerService,
	maxUploadBytes int64,
	healthChecks ...HealthCheck,
) *RestHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = validators.MaxImageBytes
	}
	return &RestHandler{
		whiteboardService:  whiteboardService,
		presenceService:    presenceService,
		fileManagerService: fileManagerService,
		maxUploadBytes:     maxUploadBytes,
		healthChecks:       healthChecks,
	}
}

func (rh *RestHandler) CreateWhiteboard(ctx *gin.Context) {
	var req whiteboard.CreateWhiteboardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Println("[RestHandler] create whiteboard binding:", err)
		abortWithError(ctx, errs.ErrInvalidRequestBody)
		return
	}

	board, err := rh.whiteboardService.CreateWhiteboard(&req)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgWhiteboardCreated,
		Data:    board,
	})
}

func (rh *RestHandler) ListWhiteboards(ctx *gin.Context) {
	boards, err := rh.whiteboardService.ListWhiteboards(ctx.Query("owner_id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    boards,
	})
}

func (rh *RestHandler) GetWhiteboard(ctx *gin.Context) {
	board, err := rh.whiteboardService.GetWhiteboard(utils.GetWhiteboardIdFromContext(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    board,
	})
}

// SaveWhiteboardItems replaces the stored content of the board.
func (rh *RestHandler) SaveWhiteboardItems(ctx *gin.Context) {
	var req whiteboard.SaveItemsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Println("[RestHandler] save items binding:", err)
		abortWithError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	for i := range req.Items {
		if req.Items[i].LastEditedBy == "" {
			req.Items[i].LastEditedBy = req.EditorID
		}
	}

	whiteboardId := utils.GetWhiteboardIdFromContext(ctx)
	if err := rh.whiteboardService.SaveItems(whiteboardId, req.Items); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgWhiteboardSaved,
		Data:    gin.H{"count": len(req.Items)},
	})
}

func (rh *RestHandler) ToggleFavorite(ctx *gin.Context) {
	board, err := rh.whiteboardService.ToggleFavorite(utils.GetWhiteboardIdFromContext(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    board,
	})
}

// GetCollaborators returns the board's roster, owner first.
func (rh *RestHandler) GetCollaborators(ctx *gin.Context) {
	roster, err := rh.whiteboardService.Collaborators(utils.GetWhiteboardIdFromContext(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    roster,
	})
}

func (rh *RestHandler) AddCollaborator(ctx *gin.Context) {
	var req whiteboard.AddCollaboratorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Println("[RestHandler] add collaborator binding:", err)
		abortWithError(ctx, errs.ErrInvalidRequestBody)
		return
	}

	roster, err := rh.whiteboardService.AddCollaborator(utils.GetWhiteboardIdFromContext(ctx), &req)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgCollaboratorAdded,
		Data:    roster,
	})
}

func (rh *RestHandler) RemoveCollaborator(ctx *gin.Context) {
	roster, err := rh.whiteboardService.RemoveCollaborator(utils.GetWhiteboardIdFromContext(ctx), ctx.Param("user_id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgCollaboratorRemoved,
		Data:    roster,
	})
}

// UploadWhiteboardImage stores the multipart "image" file and returns its
// URL. Placing the image on the board is up to the uploading client.
func (rh *RestHandler) UploadWhiteboardImage(ctx *gin.Context) {
	whiteboardId := utils.GetWhiteboardIdFromContext(ctx)
	if _, err := rh.whiteboardService.FindWhiteboard(whiteboardId); err != nil {
		abortWithError(ctx, err)
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		abortWithError(ctx, errs.ErrNoFileUploaded)
		return
	}
	if file.Size > rh.maxUploadBytes {
		abortWithError(ctx, errs.ErrImageTooLarge)
		return
	}
	src, err := file.Open()
	if err != nil {
		log.Println("[RestHandler] open uploaded file:", err)
		abortWithError(ctx, errs.ErrNoFileUploaded)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, rh.maxUploadBytes+1))
	if err != nil {
		log.Println("[RestHandler] read uploaded file:", err)
		abortWithError(ctx, errs.ErrNoFileUploaded)
		return
	}

	url, err := rh.fileManagerService.UploadWhiteboardImage(ctx.Request.Context(), file.Filename, data)
	if err != nil {
		if !isClientError(err) {
			log.Printf("[RestHandler] upload image to %s: %v", whiteboardId, err)
			err = errs.ErrUnableToUploadFile
		}
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgImageUploaded,
		Data:    gin.H{"url": url},
	})
}

func (rh *RestHandler) GetPresence(ctx *gin.Context) {
	collaborators, err := rh.presenceService.List(ctx.Request.Context(), utils.GetWhiteboardIdFromContext(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    collaborators,
	})
}

func (rh *RestHandler) ExportWhiteboardPNG(ctx *gin.Context) {
	whiteboardId := utils.GetWhiteboardIdFromContext(ctx)
	if _, err := rh.whiteboardService.FindWhiteboard(whiteboardId); err != nil {
		abortWithError(ctx, err)
		return
	}
	items, err := rh.whiteboardService.Items(whiteboardId)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WritePNG(&buf, items); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `inline; filename="`+whiteboardId+`.png"`)
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (rh *RestHandler) Health(ctx *gin.Context) {
	status := make(map[string]string, len(rh.healthChecks))
	healthy := true
	for _, check := range rh.healthChecks {
		if err := check.Ping(ctx.Request.Context()); err != nil {
			log.Printf("[RestHandler] health %s: %v", check.Name, err)
			status[check.Name] = err.Error()
			healthy = false
			continue
		}
		status[check.Name] = "ok"
	}

	if !healthy {
		ctx.JSON(http.StatusServiceUnavailable, models.Response{
			Success: false,
			Message: msgs.MsgServiceDegraded,
			Data:    status,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgServiceHealthy,
		Data:    status,
	})
}

func statusFor(err error) int {
	switch errors.Cause(err) {
	case errs.ErrWhiteboardNotFound, errs.ErrItemNotFound, errs.ErrCollaboratorNotFound:
		return http.StatusNotFound
	case errs.ErrAlreadyCollaborator:
		return http.StatusConflict
	case errs.ErrImageTooLarge:
		return http.StatusRequestEntityTooLarge
	case errs.ErrNotAnImage:
		return http.StatusUnsupportedMediaType
	case errs.ErrInvalidRequestBody, errs.ErrInvalidRequest, errs.ErrInvalidParams,
		errs.ErrInvalidBoardId, errs.ErrBoardNameEmpty, errs.ErrInvalidItem,
		errs.ErrInvalidUserId, errs.ErrEmptyFile, errs.ErrNoFileUploaded, errs.ErrCannotRemoveOwner:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func isClientError(err error) bool {
	return statusFor(err) < http.StatusInternalServerError
}

// abortWithError writes the error response. Errors that are not one of our
// sentinels are logged and reported as internal.
func abortWithError(ctx *gin.Context, err error) {
	status := statusFor(err)
	var public error = errs.ErrInternalServer
	if cause, ok := errors.Cause(err).(errs.Error); ok {
		public = cause
	} else {
		log.Printf("[RestHandler] %s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
	}
	ctx.AbortWithStatusJSON(status, models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  []error{public},
	})
}
