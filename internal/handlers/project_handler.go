package handlers

import (
	"net/http"
	"time"

	"construction-management-backend/internal/models"
	"construction-management-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProjectHandler struct {
	repo *repository.ProjectRepository
}

func NewProjectHandler(repo *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var payload struct {
		Name        string `json:"name" binding:"required"`
		Client      string `json:"client"`
		Address     string `json:"address"`
		Description string `json:"description"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	project := &models.Project{
		ID:          uuid.New(),
		Name:        payload.Name,
		Client:      payload.Client,
		Address:     payload.Address,
		Description: payload.Description,
		Status:      "active",
		CreatedAt:   time.Now(),
	}
	if err := h.repo.Create(project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.repo.List(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	project, err := h.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	project, err := h.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	var payload struct {
		Name        *string `json:"name"`
		Client      *string `json:"client"`
		Address     *string `json:"address"`
		Status      *string `json:"status"`
		Description *string `json:"description"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Name != nil {
		project.Name = *payload.Name
	}
	if payload.Client != nil {
		project.Client = *payload.Client
	}
	if payload.Address != nil {
		project.Address = *payload.Address
	}
	if payload.Status != nil {
		project.Status = *payload.Status
	}
	if payload.Description != nil {
		project.Description = *payload.Description
	}

	if err := h.repo.Update(project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	if err := h.repo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// Summary aggregates the project's financial and progress figures.
func (h *ProjectHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}
	db := h.repo.DB()

	var billTotal float64
	db.Model(&models.BillItem{}).
		Where("project_id = ?", id).
		Select("COALESCE(SUM(total_price),0)").
		Scan(&billTotal)

	var expenseTotal decimal.Decimal
	db.Model(&models.Expense{}).
		Where("project_id = ?", id).
		Select("COALESCE(SUM(amount),0)").
		Scan(&expenseTotal)

	var orderTotal decimal.Decimal
	db.Model(&models.PurchaseOrder{}).
		Where("project_id = ?", id).
		Select("COALESCE(SUM(total_amount),0)").
		Scan(&orderTotal)

	var openTasks int64
	db.Model(&models.Task{}).
		Where("project_id = ? AND status <> ?", id, models.TaskStatusDone).
		Count(&openTasks)

	type statusRow struct {
		Status string
		Count  int64
	}
	var situationRows []statusRow
	db.Model(&models.ConstructionLogSituation{}).
		Where("project_id = ?", id).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&situationRows)
	situations := make(map[string]int64, len(situationRows))
	for _, row := range situationRows {
		situations[row.Status] = row.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"bill_total":           billTotal,
		"expense_total":        expenseTotal,
		"purchase_order_total": orderTotal,
		"open_tasks":           openTasks,
		"situations_by_status": situations,
	})
}
