package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseOrder struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID           `gorm:"type:uuid;index" json:"project_id"`
	OrderNumber string              `gorm:"uniqueIndex" json:"order_number"`
	Supplier    string              `gorm:"index" json:"supplier"`
	Status      string              `gorm:"index" json:"status"`
	OrderDate   time.Time           `json:"order_date"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;index" json:"purchase_order_id"`
	Description     string          `gorm:"type:text" json:"description"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_price"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ComputeTotal sums the line totals into TotalAmount.
func (po *PurchaseOrder) ComputeTotal() {
	total := decimal.Zero
	for i := range po.Items {
		total = total.Add(po.Items[i].TotalPrice)
	}
	po.TotalAmount = total
}
