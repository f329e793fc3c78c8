package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/pkg/money"
)

func sampleBooking() *BookingRecord {
	return &BookingRecord{
		ID:            "42",
		BookingNumber: "BL-2025-0001",
		CustomerName:  "Tan Mei Ling",
		Phone:         "012-3456789",
		Email:         "mei@example.org",
		BookingDate:   "2025-03-07T00:00:00Z",
		Amount:        money.MustParse("5000"),
		PaymentMethod: "cash",
		Status:        enum.BookingStatusConfirmed,
	}
}

func TestChangesIgnoresEquivalentValues(t *testing.T) {
	b := sampleBooking()
	form := FormFromRecord(b)
	form.CustomerName = "  Tan Mei Ling "
	form.BookingDate = "2025-03-07"
	form.Amount = money.MustParse("5000.00")
	form.Status = ""

	if changes := Changes(b, form); len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}

func TestChangesListsEditedFields(t *testing.T) {
	b := sampleBooking()
	form := FormFromRecord(b)
	form.Notes = "Light for family"
	form.Amount = money.MustParse("5500")
	form.Status = enum.BookingStatusCompleted

	changes := Changes(b, form)
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %+v", changes)
	}
	fields := map[string]FieldChange{}
	for _, c := range changes {
		fields[c.Field] = c
	}
	if fields["amount"].From != "5000.00" || fields["amount"].To != "5500.00" {
		t.Fatalf("unexpected amount change %+v", fields["amount"])
	}
	if fields["status"].To != "COMPLETED" {
		t.Fatalf("unexpected status change %+v", fields["status"])
	}
	if _, ok := fields["notes"]; !ok {
		t.Fatal("expected notes change")
	}
}

func TestBookingFilterMatches(t *testing.T) {
	b := sampleBooking()
	from := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	before := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		filter BookingFilter
		want   bool
	}{
		{"empty", BookingFilter{}, true},
		{"search name", BookingFilter{Search: "mei ling"}, true},
		{"search number", BookingFilter{Search: "bl-2025"}, true},
		{"search miss", BookingFilter{Search: "lim"}, false},
		{"status", BookingFilter{Status: enum.BookingStatusConfirmed}, true},
		{"status miss", BookingFilter{Status: enum.BookingStatusPending}, false},
		{"payment method", BookingFilter{PaymentMethod: "CASH"}, true},
		{"inclusive range", BookingFilter{FromDate: &from, ToDate: &to}, true},
		{"before range", BookingFilter{ToDate: &before}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(b); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReceiptNumberFallsBackToID(t *testing.T) {
	b := sampleBooking()
	if b.ReceiptNumber() != "BL-2025-0001" {
		t.Fatalf("got %q", b.ReceiptNumber())
	}
	b.BookingNumber = " "
	if b.ReceiptNumber() != "42" {
		t.Fatalf("got %q", b.ReceiptNumber())
	}
}

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var rec struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 17, "b": " abc ", "c": null}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.A != "17" || rec.B != "abc" || !rec.C.IsZero() {
		t.Fatalf("unexpected ids %+v", rec)
	}
}
