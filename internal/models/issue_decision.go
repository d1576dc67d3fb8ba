package models

import (
	"time"

	"github.com/google/uuid"
)

// IssueDecision records an accept or reject of a validation suggestion
// against a bill item field.
type IssueDecision struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	BillItemID    uuid.UUID `gorm:"type:uuid;index" json:"bill_item_id"`
	Field         string    `json:"field"`
	Action        string    `json:"action"`
	PreviousValue string    `json:"previous_value"`
	NewValue      string    `json:"new_value"`
	PerformedBy   string    `json:"performed_by"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}
