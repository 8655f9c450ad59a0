package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/vyanhpham/rosea-backend/internal/errors"
	"github.com/vyanhpham/rosea-backend/internal/middleware"
	"github.com/vyanhpham/rosea-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
}

// UploadImage accepts a multipart image and stores it in S3 (admin)
// POST /api/v1/admin/upload
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "File is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := storage.ValidateContentType(contentType, storage.AllowedImageTypes); err != nil {
		log.Warn("Rejected upload with invalid content type", map[string]interface{}{
			"content_type": contentType,
			"filename":     fileHeader.Filename,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		return
	}
	if err := storage.ValidateFileSize(fileHeader.Size, storage.MaxImageSize); err != nil {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "File exceeds the 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, nil)
		apperrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	folder := c.PostForm("folder")
	url, err := ctrl.storage.Upload(c.Request.Context(), folder, fileHeader.Filename, contentType, file)
	if err != nil {
		log.Error("Failed to upload file", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to upload file")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url": url,
	})
}

// GeneratePresignedURL returns a presigned PUT URL for direct upload (admin)
// POST /api/v1/admin/upload/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Filename and content type are required")
		return
	}

	if err := storage.ValidateContentType(req.ContentType, storage.AllowedImageTypes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		return
	}

	response, err := ctrl.storage.GeneratePresignedURL(req.Folder, req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to generate presigned URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": response.UploadURL,
		"file_url":   response.FileURL,
		"key":        response.Key,
	})
}
