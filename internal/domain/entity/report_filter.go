package entity

import (
	"net/url"
	"time"

	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/pkg/format"
)

const filterDateLayout = "2006-01-02"

// ReportFilter is the transient filter state of a report page
type ReportFilter struct {
	Preset        enum.DatePreset `json:"preset,omitempty"`
	FromDate      string          `json:"from_date,omitempty"`
	ToDate        string          `json:"to_date,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Status        string          `json:"status,omitempty"`
	ViewMode      enum.ViewMode   `json:"view_mode"`
}

// ResolveRange returns the period a preset covers as of now, from the
// start of the period up to today. Weeks start on Monday. A custom
// filter returns its own dates, either of which may be nil.
func (f ReportFilter) ResolveRange(now time.Time) (from, to *time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var start time.Time
	switch f.Preset {
	case enum.DatePresetToday:
		start = today
	case enum.DatePresetWeek:
		offset := (int(today.Weekday()) + 6) % 7
		start = today.AddDate(0, 0, -offset)
	case enum.DatePresetMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	case enum.DatePresetQuarter:
		q := (int(today.Month()) - 1) / 3
		start = time.Date(today.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, today.Location())
	case enum.DatePresetYear:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	default:
		if t, ok := format.ParseDate(f.FromDate); ok {
			from = &t
		}
		if t, ok := format.ParseDate(f.ToDate); ok {
			to = &t
		}
		return from, to
	}
	return &start, &today
}

// Resolved returns a copy with preset dates filled in and the view mode
// defaulted to summary.
func (f ReportFilter) Resolved(now time.Time) ReportFilter {
	from, to := f.ResolveRange(now)
	f.FromDate, f.ToDate = "", ""
	if from != nil {
		f.FromDate = from.Format(filterDateLayout)
	}
	if to != nil {
		f.ToDate = to.Format(filterDateLayout)
	}
	if f.ViewMode == "" {
		f.ViewMode = enum.ViewModeSummary
	}
	return f
}

// Query encodes the filter for backend report and export URLs
func (f ReportFilter) Query() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("from_date", f.FromDate)
	set("to_date", f.ToDate)
	set("supplier_id", f.SupplierID)
	set("payment_method", f.PaymentMethod)
	set("status", f.Status)
	set("view_mode", string(f.ViewMode))
	return q
}

// Period returns the printable period caption
func (f ReportFilter) Period() string {
	switch {
	case f.FromDate != "" && f.ToDate != "":
		return format.PrintDate(f.FromDate) + " to " + format.PrintDate(f.ToDate)
	case f.FromDate != "":
		return "From " + format.PrintDate(f.FromDate)
	case f.ToDate != "":
		return "Up to " + format.PrintDate(f.ToDate)
	default:
		return "All dates"
	}
}
