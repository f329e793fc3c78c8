package response

import (
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/pkg/format"
)

// BookingDetail is a booking as shown on its detail page
type BookingDetail struct {
	*entity.BookingRecord
	BookingDateDisplay string `json:"booking_date_display"`
	StatusLabel        string `json:"status_label"`
}

// NewBookingDetail adds the display fields of the detail page
func NewBookingDetail(b *entity.BookingRecord) BookingDetail {
	return BookingDetail{
		BookingRecord:      b,
		BookingDateDisplay: format.LongDate(b.BookingDate),
		StatusLabel:        b.Status.Label(),
	}
}
