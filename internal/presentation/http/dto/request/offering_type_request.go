package request

import (
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/pkg/money"
)

// OfferingTypeRequest represents an offering type create or update request
type OfferingTypeRequest struct {
	Name          string       `json:"name" binding:"required,max=255"`
	NameSecondary string       `json:"name_secondary" binding:"omitempty,max=255"`
	Description   string       `json:"description" binding:"omitempty,max=2000"`
	Amount        money.Amount `json:"amount"`
	Status        string       `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE active inactive"`
}

// ToForm converts the request to the domain form
func (r *OfferingTypeRequest) ToForm() entity.OfferingTypeForm {
	return entity.OfferingTypeForm{
		Name:          r.Name,
		NameSecondary: r.NameSecondary,
		Description:   r.Description,
		Amount:        r.Amount,
		Status:        r.Status,
	}
}
