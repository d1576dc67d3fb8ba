package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PhotoStatusPending  = "pending"
	PhotoStatusUploaded = "uploaded"
)

// Photo is the metadata row for a site photo stored in the object bucket.
// The binary travels directly between client and bucket via signed URLs.
type Photo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	FileName   string    `json:"file_name"`
	ObjectKey  string    `gorm:"uniqueIndex" json:"object_key"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Caption    string    `gorm:"type:text" json:"caption"`
	TakenAt    *time.Time `json:"taken_at"`
	Status     string    `gorm:"index" json:"status"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
