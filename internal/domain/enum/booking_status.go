package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/sangkips/temple-api/pkg/format"
)

// BookingStatus represents the lifecycle state of a lamp booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusFailed    BookingStatus = "FAILED"
)

// BookingStatuses lists every valid status
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusFailed,
}

func (s BookingStatus) String() string {
	return string(s)
}

// Label returns the title-cased status for display
func (s BookingStatus) Label() string {
	if s == "" {
		return "-"
	}
	return format.Title(strings.ToLower(string(s)))
}

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsFinal reports whether the booking can no longer be edited
func (s BookingStatus) IsFinal() bool {
	return s == BookingStatusCancelled
}

// ParseBookingStatus normalizes a status string, case-insensitively
func ParseBookingStatus(s string) BookingStatus {
	return BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
}

func (s BookingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ParseBookingStatus(str)
	return nil
}

func (s BookingStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *BookingStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BookingStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ParseBookingStatus(v)
	case []byte:
		*s = ParseBookingStatus(string(v))
	}
	return nil
}
