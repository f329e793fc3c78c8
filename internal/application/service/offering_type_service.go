package service

import (
	"context"
	"strings"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/pkg/apperror"
)

// OfferingTypeService handles offering type master data
type OfferingTypeService struct {
	offeringTypeRepo repository.OfferingTypeRepository
}

// NewOfferingTypeService creates a new offering type service
func NewOfferingTypeService(offeringTypeRepo repository.OfferingTypeRepository) *OfferingTypeService {
	return &OfferingTypeService{offeringTypeRepo: offeringTypeRepo}
}

// ListOfferingTypes returns every offering type, optionally only active ones
func (s *OfferingTypeService) ListOfferingTypes(ctx context.Context, activeOnly bool) ([]entity.OfferingType, error) {
	types, err := s.offeringTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return types, nil
	}
	active := make([]entity.OfferingType, 0, len(types))
	for _, t := range types {
		if t.Status == "" || strings.EqualFold(t.Status, "ACTIVE") {
			active = append(active, t)
		}
	}
	return active, nil
}

// GetOfferingType returns one offering type
func (s *OfferingTypeService) GetOfferingType(ctx context.Context, id string) (*entity.OfferingType, error) {
	ot, err := s.offeringTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ot == nil {
		return nil, apperror.NewNotFoundError("Offering type")
	}
	return ot, nil
}

// CreateOfferingType creates a new offering type
func (s *OfferingTypeService) CreateOfferingType(ctx context.Context, form entity.OfferingTypeForm) (*entity.OfferingType, error) {
	if err := validateOfferingType(&form); err != nil {
		return nil, err
	}
	return s.offeringTypeRepo.Create(ctx, form)
}

// UpdateOfferingType updates an offering type
func (s *OfferingTypeService) UpdateOfferingType(ctx context.Context, id string, form entity.OfferingTypeForm) (*entity.OfferingType, error) {
	if err := validateOfferingType(&form); err != nil {
		return nil, err
	}
	ot, err := s.offeringTypeRepo.Update(ctx, id, form)
	if err != nil {
		return nil, err
	}
	if ot == nil {
		return nil, apperror.NewNotFoundError("Offering type")
	}
	return ot, nil
}

// DeleteOfferingType deletes an offering type
func (s *OfferingTypeService) DeleteOfferingType(ctx context.Context, id string) error {
	if _, err := s.GetOfferingType(ctx, id); err != nil {
		return err
	}
	return s.offeringTypeRepo.Delete(ctx, id)
}

func validateOfferingType(form *entity.OfferingTypeForm) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Status = strings.ToUpper(strings.TrimSpace(form.Status))
	if form.Status == "" {
		form.Status = "ACTIVE"
	}

	var errs []apperror.FieldError
	if form.Name == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if form.Amount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "amount", Message: "amount must not be negative"})
	}
	if form.Status != "ACTIVE" && form.Status != "INACTIVE" {
		errs = append(errs, apperror.FieldError{Field: "status", Message: "status must be ACTIVE or INACTIVE"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}
