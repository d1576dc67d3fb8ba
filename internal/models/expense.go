package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID       uuid.UUID       `gorm:"type:uuid;index" json:"project_id"`
	ExpenseDate     time.Time       `gorm:"not null" json:"expense_date"`
	Category        string          `gorm:"index" json:"category"`
	Supplier        string          `json:"supplier"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `gorm:"type:text" json:"notes"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
