package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Situation statuses. Intermediate states between draft and finalized are
// free-form strings controlled by the client workflow.
const (
	SituationStatusDraft     = "draft"
	SituationStatusFinalized = "finalized"
)

// Position match statuses.
const (
	MatchStatusMatched   = "matched"
	MatchStatusUnmatched = "unmatched"
	MatchStatusAmbiguous = "ambiguous"
)

// ConstructionLogSituation is one periodic progress-claim snapshot. Deleting
// a situation cascades to its sheets and positions.
type ConstructionLogSituation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID      uuid.UUID  `gorm:"type:uuid;index" json:"project_id"`
	Name           string     `json:"name"`
	Status         string     `gorm:"index" json:"status"`
	PositionCount  int        `json:"position_count"`
	ProcessedCount int        `json:"processed_count"`
	FinalizedAt    *time.Time `json:"finalized_at"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}

// ConstructionLogSheet is one uploaded spreadsheet belonging to a situation.
type ConstructionLogSheet struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	SituationID uuid.UUID `gorm:"type:uuid;index" json:"situation_id"`
	Name        string    `json:"name"`
	ObjectKey   string    `json:"object_key"`
	RowCount    int       `json:"row_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConstructionLogPosition is one row of reconciliation state: an uploaded
// sheet row resolved against the project's bill. Positions are written in
// batches when a sheet is processed and never updated in place; the only
// mutation is en-masse deletion when the owning situation is deleted or
// reprocessed.
type ConstructionLogPosition struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID          uuid.UUID      `gorm:"type:uuid;index" json:"project_id"`
	BillItemID         *uuid.UUID     `gorm:"type:uuid;index" json:"bill_item_id"`
	SituationID        uuid.UUID      `gorm:"type:uuid;index" json:"situation_id"`
	SheetID            uuid.UUID      `gorm:"type:uuid;index" json:"sheet_id"`
	SheetName          string         `json:"sheet_name"`
	DetectedPosition   string         `json:"detected_position"`
	Description        string         `gorm:"type:text" json:"description"`
	UnitUploaded       string         `json:"unit_uploaded"`
	UnitPriceUploaded  float64        `json:"unit_price_uploaded"`
	QuantityThisPeriod float64        `json:"quantity_this_period"`
	QuantityCumulative float64        `json:"quantity_cumulative"`
	MatchStatus        string         `gorm:"index" json:"match_status"`
	MatchDetails       datatypes.JSON `json:"match_details"`
	CreatedAt          time.Time      `json:"created_at"`
}
