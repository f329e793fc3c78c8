package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/pkg/aging"
	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/money"
)

// ReportRow is one line of a backend report payload. Values are kept as
// decoded; money is coerced on read.
type ReportRow map[string]any

// Value returns the first present value among keys
func (r ReportRow) Value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Text returns the first present value among keys as a trimmed string
func (r ReportRow) Text(keys ...string) string {
	v, ok := r.Value(keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// Amount returns the first present value among keys as money, or zero
func (r ReportRow) Amount(keys ...string) money.Amount {
	v, _ := r.Value(keys...)
	return money.Coerce(v)
}

// Date returns the first present value among keys as a date
func (r ReportRow) Date(keys ...string) *time.Time {
	v, ok := r.Value(keys...)
	if !ok {
		return nil
	}
	t, ok := format.ParseDate(v)
	if !ok {
		return nil
	}
	return &t
}

// UpstreamReport is the data envelope of /purchase/reports/<kind>.
// Report families name their line list differently; Lines picks the first
// one present.
type UpstreamReport struct {
	Summary      map[string]any `json:"summary"`
	Details      []ReportRow    `json:"details"`
	Transactions []ReportRow    `json:"transactions"`
	Invoices     []ReportRow    `json:"invoices"`
	Suppliers    []ReportRow    `json:"suppliers"`
	Items        []ReportRow    `json:"items"`
}

// Lines returns the report's line list
func (u *UpstreamReport) Lines() []ReportRow {
	for _, rows := range [][]ReportRow{u.Details, u.Transactions, u.Invoices, u.Suppliers, u.Items} {
		if len(rows) > 0 {
			return rows
		}
	}
	return []ReportRow{}
}

// ExportLinks are backend download URLs carrying the report filter
type ExportLinks struct {
	Excel string `json:"excel"`
	PDF   string `json:"pdf"`
}

// PurchaseReport is a backend report with derived fields added
type PurchaseReport struct {
	Kind    enum.ReportKind `json:"kind"`
	Title   string          `json:"title"`
	Filter  ReportFilter    `json:"filter"`
	Summary map[string]any  `json:"summary,omitempty"`
	Rows    []ReportRow     `json:"rows"`
	Aging   *aging.Report   `json:"aging,omitempty"`
	Exports ExportLinks     `json:"exports"`
}

// ColumnKind selects how a report cell is formatted
type ColumnKind int

const (
	ColumnText ColumnKind = iota
	ColumnMoney
	ColumnDate
	ColumnNumber
)

// ReportColumn maps backend row keys to a printed column
type ReportColumn struct {
	Label string
	Keys  []string
	Kind  ColumnKind
	// Total sums the column into the document totals.
	Total bool
}

// Cell formats the column's value in r
func (c ReportColumn) Cell(r ReportRow) string {
	switch c.Kind {
	case ColumnMoney:
		return format.Currency(r.Amount(c.Keys...))
	case ColumnDate:
		v, _ := r.Value(c.Keys...)
		return format.PrintDate(v)
	default:
		if s := r.Text(c.Keys...); s != "" {
			return s
		}
		return "-"
	}
}

// Row keys used by the due report
var (
	KeySupplierID   = []string{"supplier_id"}
	KeySupplierName = []string{"supplier_name", "supplier"}
	KeyReference    = []string{"invoice_number", "invoice_no", "reference", "purchase_no"}
	KeyInvoiceDate  = []string{"invoice_date", "purchase_date", "date"}
	KeyDueDate      = []string{"due_date"}
	KeyBalance      = []string{"balance", "due_amount", "due"}
)

// ReportColumns returns the printed columns for a report kind
func ReportColumns(kind enum.ReportKind) []ReportColumn {
	switch kind {
	case enum.ReportKindDue:
		return []ReportColumn{
			{Label: "Supplier", Keys: KeySupplierName},
			{Label: "Invoice", Keys: KeyReference},
			{Label: "Invoice Date", Keys: KeyInvoiceDate, Kind: ColumnDate},
			{Label: "Due Date", Keys: KeyDueDate, Kind: ColumnDate},
			{Label: "Days Overdue", Keys: []string{"days_overdue"}, Kind: ColumnNumber},
			{Label: "Aging", Keys: []string{"aging_label"}},
			{Label: "Balance", Keys: KeyBalance, Kind: ColumnMoney, Total: true},
		}
	case enum.ReportKindPaymentStatus:
		return []ReportColumn{
			{Label: "Reference", Keys: KeyReference},
			{Label: "Supplier", Keys: KeySupplierName},
			{Label: "Date", Keys: KeyInvoiceDate, Kind: ColumnDate},
			{Label: "Total", Keys: []string{"total_amount", "total"}, Kind: ColumnMoney, Total: true},
			{Label: "Paid", Keys: []string{"paid_amount", "paid"}, Kind: ColumnMoney, Total: true},
			{Label: "Due", Keys: KeyBalance, Kind: ColumnMoney, Total: true},
			{Label: "Status", Keys: []string{"payment_status", "status"}},
		}
	case enum.ReportKindSummary:
		return []ReportColumn{
			{Label: "Date", Keys: KeyInvoiceDate, Kind: ColumnDate},
			{Label: "Reference", Keys: KeyReference},
			{Label: "Supplier", Keys: KeySupplierName},
			{Label: "Items", Keys: []string{"item_count", "items"}, Kind: ColumnNumber},
			{Label: "Total", Keys: []string{"total_amount", "total"}, Kind: ColumnMoney, Total: true},
			{Label: "Paid", Keys: []string{"paid_amount", "paid"}, Kind: ColumnMoney, Total: true},
			{Label: "Due", Keys: KeyBalance, Kind: ColumnMoney, Total: true},
		}
	case enum.ReportKindStockReceipt:
		return []ReportColumn{
			{Label: "Date", Keys: []string{"received_date", "date"}, Kind: ColumnDate},
			{Label: "GRN", Keys: []string{"grn_number", "reference"}},
			{Label: "Supplier", Keys: KeySupplierName},
			{Label: "Item", Keys: []string{"item_name", "product_name", "item"}},
			{Label: "Qty", Keys: []string{"quantity", "qty"}, Kind: ColumnNumber},
			{Label: "Unit Cost", Keys: []string{"unit_cost", "unit_price"}, Kind: ColumnMoney},
			{Label: "Total", Keys: []string{"total_cost", "total_amount", "total"}, Kind: ColumnMoney, Total: true},
		}
	case enum.ReportKindSupplierAnalysis:
		return []ReportColumn{
			{Label: "Supplier", Keys: KeySupplierName},
			{Label: "Purchases", Keys: []string{"purchase_count", "total_orders"}, Kind: ColumnNumber},
			{Label: "Total Purchased", Keys: []string{"total_purchases", "total_amount"}, Kind: ColumnMoney, Total: true},
			{Label: "Total Paid", Keys: []string{"total_paid", "paid_amount"}, Kind: ColumnMoney, Total: true},
			{Label: "Outstanding", Keys: []string{"outstanding", "balance", "due_amount"}, Kind: ColumnMoney, Total: true},
		}
	default:
		return nil
	}
}
