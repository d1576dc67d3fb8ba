package models

import (
	"time"

	"github.com/google/uuid"
)

// BillItem is one priced line of a project's bill of quantities. Ordinal is
// caller-assigned and expected unique and gap-free within a bill; the
// validators report violations, the store does not enforce them.
type BillItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	Ordinal     int       `gorm:"index" json:"ordinal"`
	Description string    `gorm:"type:text" json:"description"`
	Unit        string    `json:"unit"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
