package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PrintJob records one document launch. The document itself is never
// stored, only its digest.
type PrintJob struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      enum.PrintKind      `gorm:"size:40;not null;index" json:"kind"`
	Reference string              `gorm:"size:100;index" json:"reference"`
	Digest    string              `gorm:"size:64;not null" json:"digest"`
	WindowID  *uuid.UUID          `gorm:"type:uuid" json:"window_id,omitempty"`
	Status    enum.PrintJobStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time           `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new print job
func (j *PrintJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for PrintJob
func (PrintJob) TableName() string {
	return "print_jobs"
}
