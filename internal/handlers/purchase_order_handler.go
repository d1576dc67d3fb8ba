package handlers

import (
	"net/http"
	"time"

	"construction-management-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseOrderHandler struct {
	db *gorm.DB
}

func NewPurchaseOrderHandler(db *gorm.DB) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{db: db}
}

type purchaseOrderItemPayload struct {
	Description string          `json:"description" binding:"required"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var payload struct {
		OrderNumber string                     `json:"order_number"`
		Supplier    string                     `json:"supplier" binding:"required"`
		OrderDate   time.Time                  `json:"order_date"`
		Items       []purchaseOrderItemPayload `json:"items"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	orderNumber := payload.OrderNumber
	if orderNumber == "" {
		orderNumber = uuid.New().String()
	}
	orderDate := payload.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := models.PurchaseOrder{
		ID:          uuid.New(),
		ProjectID:   projectID,
		OrderNumber: orderNumber,
		Supplier:    payload.Supplier,
		Status:      "open",
		OrderDate:   orderDate,
		CreatedAt:   time.Now(),
	}
	for _, item := range payload.Items {
		order.Items = append(order.Items, models.PurchaseOrderItem{
			ID:              uuid.New(),
			PurchaseOrderID: order.ID,
			Description:     item.Description,
			Unit:            item.Unit,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      item.Quantity.Mul(item.UnitPrice),
			CreatedAt:       time.Now(),
		})
	}
	order.ComputeTotal()

	if err := h.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"purchase_order": order})
}

func (h *PurchaseOrderHandler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var orders []models.PurchaseOrder
	query := h.db.Preload("Items").Where("project_id = ?", projectID).Order("order_date DESC")
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase_orders": orders})
}

func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var order models.PurchaseOrder
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
		return
	}
	order.Status = payload.Status
	if err := h.db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase_order": order})
}

func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PurchaseOrder{}, "id = ?", id).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "purchase order deleted"})
}
