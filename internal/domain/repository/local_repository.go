package repository

import (
	"context"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/pkg/pagination"
)

// BrandingSnapshotRepository persists the last-known-good branding
type BrandingSnapshotRepository interface {
	// Get returns the stored snapshot, or nil if none was ever saved
	Get(ctx context.Context) (*entity.BrandingSnapshot, error)
	// Save replaces the stored snapshot
	Save(ctx context.Context, snapshot *entity.BrandingSnapshot) error
}

// PrintJobFilter narrows the print journal
type PrintJobFilter struct {
	Kind      string
	Reference string
}

// PrintJobRepository stores the print journal
type PrintJobRepository interface {
	Create(ctx context.Context, job *entity.PrintJob) error
	// ListCursor returns up to limit+1 jobs beyond cursor so the caller can
	// tell whether another page exists. CursorDirectionNext walks older jobs
	// newest first; CursorDirectionPrev walks newer jobs oldest first.
	ListCursor(ctx context.Context, filter PrintJobFilter, cursor *pagination.Cursor, direction pagination.CursorDirection, limit int) ([]entity.PrintJob, error)
}
