package entity

import (
	"strings"
	"time"

	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/money"
)

// BookingRecord is a Buddha Lamp offering booking as held by the backend
type BookingRecord struct {
	ID                    ID                 `json:"id"`
	BookingNumber         string             `json:"booking_number"`
	OfferingTypeID        ID                 `json:"offering_type_id,omitempty"`
	OfferingTypeName      string             `json:"offering_type_name,omitempty"`
	CustomerName          string             `json:"customer_name"`
	CustomerNameSecondary string             `json:"customer_name_secondary"`
	NationalID            string             `json:"national_id"`
	Email                 string             `json:"email"`
	Phone                 string             `json:"phone"`
	BookingDate           string             `json:"booking_date"`
	Amount                money.Amount       `json:"amount"`
	PaymentMethod         string             `json:"payment_method"`
	Notes                 string             `json:"notes"`
	Status                enum.BookingStatus `json:"status"`
	CreatedAt             string             `json:"created_at,omitempty"`
}

// ReceiptNumber is the number printed on the receipt; records created
// before numbering was introduced fall back to their id.
func (b *BookingRecord) ReceiptNumber() string {
	if n := strings.TrimSpace(b.BookingNumber); n != "" {
		return n
	}
	return b.ID.String()
}

// BookingForm holds the editable booking fields
type BookingForm struct {
	OfferingTypeID        ID                 `json:"offering_type_id,omitempty"`
	CustomerName          string             `json:"customer_name"`
	CustomerNameSecondary string             `json:"customer_name_secondary"`
	NationalID            string             `json:"national_id"`
	Email                 string             `json:"email"`
	Phone                 string             `json:"phone"`
	BookingDate           string             `json:"booking_date"`
	Amount                money.Amount       `json:"amount"`
	PaymentMethod         string             `json:"payment_method"`
	Notes                 string             `json:"notes"`
	Status                enum.BookingStatus `json:"status,omitempty"`
}

// FormFromRecord returns the form state a freshly loaded record shows
func FormFromRecord(b *BookingRecord) BookingForm {
	return BookingForm{
		OfferingTypeID:        b.OfferingTypeID,
		CustomerName:          b.CustomerName,
		CustomerNameSecondary: b.CustomerNameSecondary,
		NationalID:            b.NationalID,
		Email:                 b.Email,
		Phone:                 b.Phone,
		BookingDate:           b.BookingDate,
		Amount:                b.Amount,
		PaymentMethod:         b.PaymentMethod,
		Notes:                 b.Notes,
		Status:                b.Status,
	}
}

// FieldChange is one edited field
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// Changes lists the fields where form differs from the loaded snapshot.
// Text is compared trimmed, dates by calendar day and amounts by value.
// An empty form status means the status is left alone.
func Changes(snapshot *BookingRecord, form BookingForm) []FieldChange {
	var changes []FieldChange
	text := func(field, from, to string) {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from != to {
			changes = append(changes, FieldChange{Field: field, From: from, To: to})
		}
	}

	if !form.OfferingTypeID.IsZero() {
		text("offering_type_id", snapshot.OfferingTypeID.String(), form.OfferingTypeID.String())
	}
	text("customer_name", snapshot.CustomerName, form.CustomerName)
	text("customer_name_secondary", snapshot.CustomerNameSecondary, form.CustomerNameSecondary)
	text("national_id", snapshot.NationalID, form.NationalID)
	text("email", snapshot.Email, form.Email)
	text("phone", snapshot.Phone, form.Phone)
	text("booking_date", dayKey(snapshot.BookingDate), dayKey(form.BookingDate))
	if !snapshot.Amount.Equal(form.Amount) {
		changes = append(changes, FieldChange{Field: "amount", From: snapshot.Amount.String(), To: form.Amount.String()})
	}
	text("payment_method", snapshot.PaymentMethod, form.PaymentMethod)
	text("notes", snapshot.Notes, form.Notes)
	if form.Status != "" {
		text("status", snapshot.Status.String(), form.Status.String())
	}
	return changes
}

func dayKey(s string) string {
	t, ok := format.ParseDate(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return t.Format("2006-01-02")
}

// BookingFilter narrows a booking list. Zero fields match everything.
type BookingFilter struct {
	Search        string
	Status        enum.BookingStatus
	PaymentMethod string
	FromDate      *time.Time
	ToDate        *time.Time
}

// Matches reports whether b passes every set criterion. Search matches
// booking number, either name, national id, phone or email case-insensitively.
// The date range is inclusive on calendar days.
func (f BookingFilter) Matches(b *BookingRecord) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.PaymentMethod != "" && !strings.EqualFold(strings.TrimSpace(b.PaymentMethod), f.PaymentMethod) {
		return false
	}
	if f.FromDate != nil || f.ToDate != nil {
		d, ok := format.ParseDate(b.BookingDate)
		if !ok {
			return false
		}
		day := d.Format("2006-01-02")
		if f.FromDate != nil && day < f.FromDate.Format("2006-01-02") {
			return false
		}
		if f.ToDate != nil && day > f.ToDate.Format("2006-01-02") {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		for _, field := range []string{b.BookingNumber, b.CustomerName, b.CustomerNameSecondary, b.NationalID, b.Phone, b.Email} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}
	return true
}
