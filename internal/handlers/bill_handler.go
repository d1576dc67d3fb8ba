package handlers

import (
	"fmt"
	"net/http"

	"construction-management-backend/internal/models"
	service "construction-management-backend/internal/services/boq"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BillHandler struct {
	service *service.Service
}

func NewBillHandler(s *service.Service) *BillHandler {
	return &BillHandler{service: s}
}

func (h *BillHandler) ListItems(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	items, err := h.service.ListItems(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *BillHandler) CreateItem(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var payload struct {
		Ordinal     int     `json:"ordinal"`
		Description string  `json:"description"`
		Unit        string  `json:"unit"`
		Quantity    float64 `json:"quantity"`
		UnitPrice   float64 `json:"unit_price"`
		TotalPrice  float64 `json:"total_price"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Quantity < 0 || payload.UnitPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity and unit price must not be negative"})
		return
	}

	item := &models.BillItem{
		ProjectID:   projectID,
		Ordinal:     payload.Ordinal,
		Description: payload.Description,
		Unit:        payload.Unit,
		Quantity:    payload.Quantity,
		UnitPrice:   payload.UnitPrice,
		TotalPrice:  payload.TotalPrice,
	}
	if item.TotalPrice == 0 {
		item.TotalPrice = payload.Quantity * payload.UnitPrice
	}
	if err := h.service.CreateItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *BillHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	var payload struct {
		Ordinal     *int     `json:"ordinal"`
		Description *string  `json:"description"`
		Unit        *string  `json:"unit"`
		Quantity    *float64 `json:"quantity"`
		UnitPrice   *float64 `json:"unit_price"`
		TotalPrice  *float64 `json:"total_price"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	existing, err := h.service.GetItem(itemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if payload.Ordinal != nil {
		existing.Ordinal = *payload.Ordinal
	}
	if payload.Description != nil {
		existing.Description = *payload.Description
	}
	if payload.Unit != nil {
		existing.Unit = *payload.Unit
	}
	if payload.Quantity != nil {
		existing.Quantity = *payload.Quantity
	}
	if payload.UnitPrice != nil {
		existing.UnitPrice = *payload.UnitPrice
	}
	if payload.TotalPrice != nil {
		existing.TotalPrice = *payload.TotalPrice
	}

	if err := h.service.UpdateItem(existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": existing})
}

func (h *BillHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}
	if err := h.service.DeleteItem(itemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// Validate runs the validation pipeline over the project's bill and returns
// the structured result for the review UI.
func (h *BillHandler) Validate(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	result, err := h.service.Validate(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ApplyFix writes an accepted suggestion back into a bill item field.
func (h *BillHandler) ApplyFix(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	var payload struct {
		Field          string `json:"field" binding:"required"`
		SuggestedValue string `json:"suggested_value" binding:"required"`
		PerformedBy    string `json:"performed_by"`
		Reason         string `json:"reason"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	item, err := h.service.ApplyFix(itemID, payload.Field, payload.SuggestedValue, payload.PerformedBy, payload.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fix applied", "item": item})
}

// ImportCSV loads bill items from an uploaded CSV file.
func (h *BillHandler) ImportCSV(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	imported, skipped, err := h.service.ImportCSV(projectID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"file":     header.Filename,
		"imported": imported,
		"skipped":  skipped,
	})
}

// ExportXLSX streams the project's bill as a workbook.
func (h *BillHandler) ExportXLSX(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	f, err := h.service.ExportXLSX(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bill-%s.xlsx", projectID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
