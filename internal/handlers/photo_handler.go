package handlers

import (
	"net/http"
	"time"

	"construction-management-backend/internal/models"
	"construction-management-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxPhotoSizeBytes int64 = 10 * 1024 * 1024
	signedURLLifetime       = 15 * time.Minute
)

var photoMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type PhotoHandler struct {
	db      *gorm.DB
	storage *storage.Client
}

// NewPhotoHandler accepts a nil storage client; upload endpoints then
// report the feature as unavailable instead of failing at startup.
func NewPhotoHandler(db *gorm.DB, storageClient *storage.Client) *PhotoHandler {
	return &PhotoHandler{db: db, storage: storageClient}
}

// SignUpload creates the photo metadata row and returns a signed PUT URL
// the client uploads the binary to.
func (h *PhotoHandler) SignUpload(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		return
	}

	var payload struct {
		FileName  string     `json:"file_name" binding:"required"`
		MimeType  string     `json:"mime_type" binding:"required"`
		SizeBytes int64      `json:"size_bytes"`
		Caption   string     `json:"caption"`
		TakenAt   *time.Time `json:"taken_at"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if !photoMimeTypes[payload.MimeType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}
	if payload.SizeBytes <= 0 || payload.SizeBytes > maxPhotoSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 10MB limit"})
		return
	}

	objectKey := storage.ObjectKey(projectID, "photos", payload.FileName)
	signed, err := h.storage.SignUpload(objectKey, payload.MimeType, signedURLLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	photo := models.Photo{
		ID:        uuid.New(),
		ProjectID: projectID,
		FileName:  payload.FileName,
		ObjectKey: objectKey,
		MimeType:  payload.MimeType,
		SizeBytes: payload.SizeBytes,
		Caption:   payload.Caption,
		TakenAt:   payload.TakenAt,
		Status:    models.PhotoStatusPending,
		CreatedAt: time.Now(),
	}
	if err := h.db.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo": photo, "upload": signed})
}

// CompleteUpload marks a photo as uploaded after the client finished the
// bucket PUT.
func (h *PhotoHandler) CompleteUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo ID"})
		return
	}

	var photo models.Photo
	if err := h.db.First(&photo, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}
	photo.Status = models.PhotoStatusUploaded
	if err := h.db.Save(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo": photo})
}

func (h *PhotoHandler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var photos []models.Photo
	if err := h.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&photos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// Download returns a temporary signed GET URL for the photo binary.
func (h *PhotoHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo ID"})
		return
	}
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		return
	}

	var photo models.Photo
	if err := h.db.First(&photo, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}

	url, err := h.storage.SignDownload(photo.ObjectKey, signedURLLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in_seconds": int(signedURLLifetime.Seconds())})
}

func (h *PhotoHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo ID"})
		return
	}
	if err := h.db.Delete(&models.Photo{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo deleted"})
}
