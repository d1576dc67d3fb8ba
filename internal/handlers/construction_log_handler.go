package handlers

import (
	"errors"
	"net/http"

	service "construction-management-backend/internal/services/constructionlog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConstructionLogHandler struct {
	service *service.Service
}

func NewConstructionLogHandler(s *service.Service) *ConstructionLogHandler {
	return &ConstructionLogHandler{service: s}
}

func (h *ConstructionLogHandler) CreateSituation(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var payload struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	situation, err := h.service.CreateSituation(projectID, payload.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"situation": situation})
}

func (h *ConstructionLogHandler) ListSituations(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	situations, err := h.service.ListSituations(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"situations": situations})
}

func (h *ConstructionLogHandler) UpdateSituationStatus(c *gin.Context) {
	situationID, err := uuid.Parse(c.Param("situationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid situation ID"})
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	situation, err := h.service.UpdateSituationStatus(situationID, payload.Status)
	if err != nil {
		if errors.Is(err, service.ErrSituationFinalized) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"situation": situation})
}

func (h *ConstructionLogHandler) DeleteSituation(c *gin.Context) {
	situationID, err := uuid.Parse(c.Param("situationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid situation ID"})
		return
	}
	if err := h.service.DeleteSituation(situationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "situation deleted"})
}

// UploadSheet ingests an xlsx quantity sheet and reconciles it against the
// project's bill in one request.
func (h *ConstructionLogHandler) UploadSheet(c *gin.Context) {
	situationID, err := uuid.Parse(c.Param("situationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid situation ID"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	sheet, positions, err := h.service.ProcessSheet(c.Request.Context(), situationID, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoBillItems):
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSituationFinalized):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrProjectLocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sheet":     sheet,
		"positions": positions,
	})
}

func (h *ConstructionLogHandler) ListSheets(c *gin.Context) {
	situationID, err := uuid.Parse(c.Param("situationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid situation ID"})
		return
	}
	sheets, err := h.service.ListSheets(situationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": sheets})
}

func (h *ConstructionLogHandler) ListPositions(c *gin.Context) {
	situationID, err := uuid.Parse(c.Param("situationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid situation ID"})
		return
	}
	positions, err := h.service.ListPositions(situationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}
