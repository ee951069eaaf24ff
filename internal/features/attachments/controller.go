package attachments

import (
	"mime"
	"net/http"

	users_middleware "taskflow/internal/features/users/middleware"
	errors_utils "taskflow/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttachmentController struct {
	attachmentService *AttachmentService
}

func (c *AttachmentController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tasks/:id/attachments", c.GetAttachments)
	router.POST("/tasks/:id/attachments", c.UploadAttachment)
	router.GET("/attachments/:id/download", c.DownloadAttachment)
	router.DELETE("/attachments/:id", c.DeleteAttachment)
}

// GetAttachments
// @Summary List task attachments
// @Description Get attachments of a task, newest first
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} ListAttachmentsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/attachments [get]
func (c *AttachmentController) GetAttachments(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	response, err := c.attachmentService.GetAttachments(taskID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UploadAttachment
// @Summary Upload attachment
// @Description Attach a file to a task. Requires MEMBER.
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param file formData file true "File to attach"
// @Success 200 {object} Attachment
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/attachments [post]
func (c *AttachmentController) UploadAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer func() { _ = file.Close() }()

	attachment, err := c.attachmentService.UploadAttachment(
		taskID,
		header.Filename,
		header.Size,
		header.Header.Get("Content-Type"),
		file,
		user,
	)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, attachment)
}

// DownloadAttachment
// @Summary Download attachment
// @Description Stream the stored file
// @Tags attachments
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attachments/{id}/download [get]
func (c *AttachmentController) DownloadAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	attachment, file, err := c.attachmentService.OpenAttachment(attachmentID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}
	defer func() { _ = file.Close() }()

	ctx.DataFromReader(
		http.StatusOK,
		attachment.FileSize,
		attachment.FileType,
		file,
		map[string]string{
			"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": attachment.FileName}),
		},
	)
}

// DeleteAttachment
// @Summary Delete attachment
// @Description Delete the stored file and its record. Requires MEMBER.
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /attachments/{id} [delete]
func (c *AttachmentController) DeleteAttachment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	if err := c.attachmentService.DeleteAttachment(attachmentID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
