package repository

import (
	"context"

	"github.com/sangkips/temple-api/internal/domain/entity"
	domainRepo "github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/pkg/pagination"
	"gorm.io/gorm"
)

type printJobRepository struct {
	db *gorm.DB
}

// NewPrintJobRepository creates a new print job repository
func NewPrintJobRepository(db *gorm.DB) domainRepo.PrintJobRepository {
	return &printJobRepository{db: db}
}

func (r *printJobRepository) Create(ctx context.Context, job *entity.PrintJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *printJobRepository) ListCursor(ctx context.Context, filter domainRepo.PrintJobFilter, cursor *pagination.Cursor, direction pagination.CursorDirection, limit int) ([]entity.PrintJob, error) {
	var jobs []entity.PrintJob

	query := r.db.WithContext(ctx).Model(&entity.PrintJob{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Reference != "" {
		query = query.Where("reference = ?", filter.Reference)
	}
	order := "created_at DESC, id DESC"
	switch {
	case cursor != nil && direction == pagination.CursorDirectionPrev:
		query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		order = "created_at ASC, id ASC"
	case cursor != nil:
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	err := query.Limit(limit + 1).
		Order(order).
		Find(&jobs).Error
	return jobs, err
}
