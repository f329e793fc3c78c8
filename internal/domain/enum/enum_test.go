package enum

import (
	"encoding/json"
	"testing"
)

func TestBookingStatusJSON(t *testing.T) {
	var s BookingStatus
	if err := json.Unmarshal([]byte(`" confirmed "`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != BookingStatusConfirmed || !s.IsValid() {
		t.Fatalf("got %q", s)
	}
	if BookingStatus("UNKNOWN").IsValid() {
		t.Fatal("unknown status should be invalid")
	}
	if !BookingStatusCancelled.IsFinal() || BookingStatusCompleted.IsFinal() {
		t.Fatal("only cancelled bookings are final")
	}
}

func TestParseReportKind(t *testing.T) {
	if k, ok := ParseReportKind(" Payment-Status "); !ok || k != ReportKindPaymentStatus {
		t.Fatalf("got %q %v", k, ok)
	}
	if _, ok := ParseReportKind("sales"); ok {
		t.Fatal("sales is not a purchase report")
	}
	for _, k := range ReportKinds {
		if k.Title() == "Purchase Report" {
			t.Fatalf("%s has no title", k)
		}
	}
}

func TestDatePresetIsValid(t *testing.T) {
	for _, p := range []DatePreset{"", DatePresetWeek, DatePresetCustom} {
		if !p.IsValid() {
			t.Fatalf("%q should be valid", p)
		}
	}
	if DatePreset("fortnight").IsValid() {
		t.Fatal("fortnight should be invalid")
	}
}

func TestTransactionTypeLabel(t *testing.T) {
	var tt TransactionType
	if err := json.Unmarshal([]byte(`"payment"`), &tt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tt.Label() != "Payment" {
		t.Fatalf("got %q", tt.Label())
	}
}

func TestBookingStatusLabel(t *testing.T) {
	if got := BookingStatusConfirmed.Label(); got != "Confirmed" {
		t.Fatalf("got %q", got)
	}
	if got := BookingStatus("").Label(); got != "-" {
		t.Fatalf("got %q", got)
	}
}
