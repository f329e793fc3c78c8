package request

import (
	"strings"
	"time"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/money"
)

// BookingRequest represents a booking create or update request.
// Amount accepts numbers or numeric strings; anything else reads as zero.
type BookingRequest struct {
	OfferingTypeID        entity.ID    `json:"offering_type_id"`
	CustomerName          string       `json:"customer_name" binding:"required,max=255"`
	CustomerNameSecondary string       `json:"customer_name_secondary" binding:"omitempty,max=255"`
	NationalID            string       `json:"national_id" binding:"omitempty,max=50"`
	Email                 string       `json:"email" binding:"omitempty,email,max=255"`
	Phone                 string       `json:"phone" binding:"omitempty,max=50"`
	BookingDate           string       `json:"booking_date" binding:"required"`
	Amount                money.Amount `json:"amount"`
	PaymentMethod         string       `json:"payment_method" binding:"required,max=50"`
	Notes                 string       `json:"notes" binding:"omitempty,max=2000"`
	Status                string       `json:"status" binding:"omitempty,booking_status"`
}

// ToForm converts the request to the domain form
func (r *BookingRequest) ToForm() entity.BookingForm {
	return entity.BookingForm{
		OfferingTypeID:        r.OfferingTypeID,
		CustomerName:          strings.TrimSpace(r.CustomerName),
		CustomerNameSecondary: strings.TrimSpace(r.CustomerNameSecondary),
		NationalID:            strings.TrimSpace(r.NationalID),
		Email:                 strings.TrimSpace(r.Email),
		Phone:                 strings.TrimSpace(r.Phone),
		BookingDate:           strings.TrimSpace(r.BookingDate),
		Amount:                r.Amount,
		PaymentMethod:         strings.TrimSpace(r.PaymentMethod),
		Notes:                 strings.TrimSpace(r.Notes),
		Status:                enum.ParseBookingStatus(r.Status),
	}
}

// BookingFilterRequest represents booking list filter parameters
type BookingFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,booking_status"`
	PaymentMethod string `form:"payment_method"`
	FromDate      string `form:"from_date"`
	ToDate        string `form:"to_date"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// ToFilter converts the request to the domain filter. Unparseable dates
// are ignored.
func (r *BookingFilterRequest) ToFilter() entity.BookingFilter {
	f := entity.BookingFilter{
		Search:        r.Search,
		Status:        enum.ParseBookingStatus(r.Status),
		PaymentMethod: strings.TrimSpace(r.PaymentMethod),
	}
	f.FromDate = parseOptionalDate(r.FromDate)
	f.ToDate = parseOptionalDate(r.ToDate)
	return f
}

func parseOptionalDate(s string) *time.Time {
	t, ok := format.ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}
