// Package aging classifies outstanding balances by days past due.
package aging

import (
	"sort"
	"time"

	"github.com/sangkips/temple-api/pkg/money"
)

// Bucket is an aging bucket.
type Bucket string

const (
	Current Bucket = "CURRENT"
	D31To60 Bucket = "D31_60"
	D61To90 Bucket = "D61_90"
	Over90  Bucket = "OVER_90"
)

// Label returns the display caption of the bucket.
func (b Bucket) Label() string {
	switch b {
	case D31To60:
		return "31-60 Days"
	case D61To90:
		return "61-90 Days"
	case Over90:
		return "Over 90 Days"
	default:
		return "Current"
	}
}

// Invoice is the subset of an invoice the bucketer needs.
type Invoice struct {
	SupplierID   string
	SupplierName string
	InvoiceDate  *time.Time
	DueDate      *time.Time
	Balance      money.Amount
}

// Buckets holds per-bucket totals. Total always equals the sum of the buckets.
type Buckets struct {
	Current    money.Amount `json:"current"`
	Days31To60 money.Amount `json:"31_60_days"`
	Days61To90 money.Amount `json:"61_90_days"`
	Over90     money.Amount `json:"over_90_days"`
	Total      money.Amount `json:"total"`
}

// Add puts amount into bucket b.
func (s *Buckets) Add(b Bucket, amount money.Amount) {
	switch b {
	case D31To60:
		s.Days31To60 = s.Days31To60.Add(amount)
	case D61To90:
		s.Days61To90 = s.Days61To90.Add(amount)
	case Over90:
		s.Over90 = s.Over90.Add(amount)
	default:
		s.Current = s.Current.Add(amount)
	}
	s.Total = s.Total.Add(amount)
}

// Get returns the amount held in bucket b.
func (s Buckets) Get(b Bucket) money.Amount {
	switch b {
	case D31To60:
		return s.Days31To60
	case D61To90:
		return s.Days61To90
	case Over90:
		return s.Over90
	default:
		return s.Current
	}
}

// SupplierAging is the aging breakdown for one supplier.
type SupplierAging struct {
	SupplierID   string  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	InvoiceCount int     `json:"invoice_count"`
	Buckets      Buckets `json:"buckets"`
}

// Report is the result of Aggregate.
type Report struct {
	AsOf      time.Time       `json:"as_of"`
	Suppliers []SupplierAging `json:"suppliers"`
	Totals    Buckets         `json:"totals"`
}

// All lists the buckets in display order.
var All = []Bucket{Current, D31To60, D61To90, Over90}

// DaysOverdue returns whole calendar days from dueDate to asOf. Negative
// values mean the invoice is not yet due.
func DaysOverdue(dueDate, asOf time.Time) int {
	return int(civilDay(asOf).Sub(civilDay(dueDate)).Hours() / 24)
}

// Classify returns the bucket for an invoice due on dueDate as seen on asOf.
func Classify(dueDate, asOf time.Time) Bucket {
	days := DaysOverdue(dueDate, asOf)
	switch {
	case days <= 30:
		return Current
	case days <= 60:
		return D31To60
	case days <= 90:
		return D61To90
	default:
		return Over90
	}
}

// ClassifyInvoice prefers the due date and falls back to the invoice date.
// An invoice with neither is Current.
func ClassifyInvoice(inv Invoice, asOf time.Time) Bucket {
	switch {
	case inv.DueDate != nil && !inv.DueDate.IsZero():
		return Classify(*inv.DueDate, asOf)
	case inv.InvoiceDate != nil && !inv.InvoiceDate.IsZero():
		return Classify(*inv.InvoiceDate, asOf)
	default:
		return Current
	}
}

// Aggregate sums invoice balances per bucket, per supplier and overall.
// The result depends only on the invoice set and asOf.
func Aggregate(invoices []Invoice, asOf time.Time) Report {
	bySupplier := make(map[string]*SupplierAging)
	var totals Buckets

	for _, inv := range invoices {
		b := ClassifyInvoice(inv, asOf)
		key := inv.SupplierID
		if key == "" {
			key = "name:" + inv.SupplierName
		}
		sa, ok := bySupplier[key]
		if !ok {
			sa = &SupplierAging{SupplierID: inv.SupplierID, SupplierName: inv.SupplierName}
			bySupplier[key] = sa
		}
		sa.InvoiceCount++
		sa.Buckets.Add(b, inv.Balance)
		totals.Add(b, inv.Balance)
	}

	suppliers := make([]SupplierAging, 0, len(bySupplier))
	for _, sa := range bySupplier {
		suppliers = append(suppliers, *sa)
	}
	sort.Slice(suppliers, func(i, j int) bool {
		if suppliers[i].SupplierName != suppliers[j].SupplierName {
			return suppliers[i].SupplierName < suppliers[j].SupplierName
		}
		return suppliers[i].SupplierID < suppliers[j].SupplierID
	})

	return Report{AsOf: civilDay(asOf), Suppliers: suppliers, Totals: totals}
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
