package request

import (
	"strings"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/pkg/pagination"
)

// ReportFilterRequest represents purchase report filter parameters
type ReportFilterRequest struct {
	Preset        string `form:"preset" binding:"omitempty,date_preset"`
	FromDate      string `form:"from_date"`
	ToDate        string `form:"to_date"`
	SupplierID    string `form:"supplier_id"`
	PaymentMethod string `form:"payment_method"`
	Status        string `form:"status"`
	ViewMode      string `form:"view_mode" binding:"omitempty,oneof=summary detailed"`
}

// ToFilter converts the request to the domain filter
func (r *ReportFilterRequest) ToFilter() entity.ReportFilter {
	return entity.ReportFilter{
		Preset:        enum.DatePreset(strings.ToLower(strings.TrimSpace(r.Preset))),
		FromDate:      strings.TrimSpace(r.FromDate),
		ToDate:        strings.TrimSpace(r.ToDate),
		SupplierID:    strings.TrimSpace(r.SupplierID),
		PaymentMethod: strings.TrimSpace(r.PaymentMethod),
		Status:        strings.TrimSpace(r.Status),
		ViewMode:      enum.ViewMode(r.ViewMode),
	}
}

// StatementRequest represents supplier statement parameters
type StatementRequest struct {
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
}

// PrintJobFilterRequest represents print journal list parameters
type PrintJobFilterRequest struct {
	pagination.CursorParams
	Kind      string `form:"kind" binding:"omitempty,oneof=booking_receipt supplier_statement purchase_report"`
	Reference string `form:"reference"`
}
