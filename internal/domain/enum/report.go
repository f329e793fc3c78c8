package enum

import "strings"

// ReportKind is one of the purchase report families
type ReportKind string

const (
	ReportKindDue              ReportKind = "due"
	ReportKindPaymentStatus    ReportKind = "payment-status"
	ReportKindSummary          ReportKind = "summary"
	ReportKindStockReceipt     ReportKind = "stock-receipt"
	ReportKindSupplierAnalysis ReportKind = "supplier-analysis"
)

// ReportKinds lists every supported report
var ReportKinds = []ReportKind{
	ReportKindDue,
	ReportKindPaymentStatus,
	ReportKindSummary,
	ReportKindStockReceipt,
	ReportKindSupplierAnalysis,
}

// ParseReportKind returns the kind for s and whether it is known
func ParseReportKind(s string) (ReportKind, bool) {
	k := ReportKind(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ReportKinds {
		if k == v {
			return k, true
		}
	}
	return "", false
}

// Title returns the printed document title
func (k ReportKind) Title() string {
	switch k {
	case ReportKindDue:
		return "Purchase Due Report"
	case ReportKindPaymentStatus:
		return "Payment Status Report"
	case ReportKindSummary:
		return "Purchase Summary Report"
	case ReportKindStockReceipt:
		return "Stock Receipt Report"
	case ReportKindSupplierAnalysis:
		return "Supplier Analysis Report"
	default:
		return "Purchase Report"
	}
}

// DatePreset is a named reporting period
type DatePreset string

const (
	DatePresetToday   DatePreset = "today"
	DatePresetWeek    DatePreset = "week"
	DatePresetMonth   DatePreset = "month"
	DatePresetQuarter DatePreset = "quarter"
	DatePresetYear    DatePreset = "year"
	DatePresetCustom  DatePreset = "custom"
)

// IsValid reports whether p is a known preset; empty counts as custom
func (p DatePreset) IsValid() bool {
	switch p {
	case "", DatePresetToday, DatePresetWeek, DatePresetMonth, DatePresetQuarter, DatePresetYear, DatePresetCustom:
		return true
	}
	return false
}

// ViewMode selects summary or detailed report output
type ViewMode string

const (
	ViewModeSummary  ViewMode = "summary"
	ViewModeDetailed ViewMode = "detailed"
)
