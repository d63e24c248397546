package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generation outcomes
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// GenerationRecord is one audited generation attempt. It stores what
// happened, never the ingredients or the recipe text.
type GenerationRecord struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	RequestID       uuid.UUID `gorm:"type:varchar(36);not null" json:"request_id"`
	SessionID       string    `gorm:"size:64;index" json:"session_id"`
	Provider        string    `gorm:"size:32" json:"provider"`
	IngredientCount int       `json:"ingredient_count"`
	Outcome         string    `gorm:"size:16;not null" json:"outcome"`
	ErrorKind       string    `gorm:"size:32" json:"error_kind,omitempty"`
	Message         string    `gorm:"type:text" json:"message,omitempty"`
	DurationMs      int64     `json:"duration_ms"`
}

// TableName specifies the table name for GenerationRecord
func (GenerationRecord) TableName() string {
	return "generation_records"
}

// BeforeCreate assigns an id when none was set.
func (r *GenerationRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
