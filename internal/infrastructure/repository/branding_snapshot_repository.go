package repository

import (
	"context"
	"errors"

	"github.com/sangkips/temple-api/internal/domain/entity"
	domainRepo "github.com/sangkips/temple-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type brandingSnapshotRepository struct {
	db *gorm.DB
}

// NewBrandingSnapshotRepository creates a new branding snapshot repository
func NewBrandingSnapshotRepository(db *gorm.DB) domainRepo.BrandingSnapshotRepository {
	return &brandingSnapshotRepository{db: db}
}

func (r *brandingSnapshotRepository) Get(ctx context.Context) (*entity.BrandingSnapshot, error) {
	var snapshot entity.BrandingSnapshot
	err := r.db.WithContext(ctx).
		Where("key = ?", entity.BrandingSnapshotKey).
		First(&snapshot).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *brandingSnapshotRepository) Save(ctx context.Context, snapshot *entity.BrandingSnapshot) error {
	snapshot.Key = entity.BrandingSnapshotKey
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(snapshot).Error
}
