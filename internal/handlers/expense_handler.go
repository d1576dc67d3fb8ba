package handlers

import (
	"net/http"
	"time"

	"construction-management-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseHandler struct {
	db *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{db: db}
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var payload struct {
		ExpenseDate     time.Time       `json:"expense_date" binding:"required"`
		Category        string          `json:"category"`
		Supplier        string          `json:"supplier"`
		ReferenceNumber string          `json:"reference_number"`
		Notes           string          `json:"notes"`
		Amount          decimal.Decimal `json:"amount"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
		return
	}

	expense := models.Expense{
		ID:              uuid.New(),
		ProjectID:       projectID,
		ExpenseDate:     payload.ExpenseDate,
		Category:        payload.Category,
		Supplier:        payload.Supplier,
		ReferenceNumber: payload.ReferenceNumber,
		Notes:           payload.Notes,
		Amount:          payload.Amount,
		CreatedAt:       time.Now(),
	}
	if err := h.db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

func (h *ExpenseHandler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var expenses []models.Expense
	query := h.db.Where("project_id = ?", projectID).Order("expense_date DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "total": total})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense ID"})
		return
	}
	if err := h.db.Delete(&models.Expense{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}
