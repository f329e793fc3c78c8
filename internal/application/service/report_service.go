package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/pkg/aging"
	"github.com/sangkips/temple-api/pkg/apperror"
	"github.com/sangkips/temple-api/pkg/document"
	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/money"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportService builds purchase reports from backend data
type ReportService struct {
	reportRepo repository.PurchaseReportRepository
	branding   *BrandingService
	prints     *PrintService
	settings   PrintSettings
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.PurchaseReportRepository,
	branding *BrandingService,
	prints *PrintService,
	settings PrintSettings,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		branding:   branding,
		prints:     prints,
		settings:   settings,
		logger:     logger,
		now:        time.Now,
	}
}

// ReportsPath is the admin view for a report kind
func ReportsPath(kind enum.ReportKind) string {
	return "/purchase/reports/" + string(kind)
}

// Report fetches a report and adds the derived fields. The due report is
// re-aged locally and its rows gain days_overdue and aging_bucket.
func (s *ReportService) Report(ctx context.Context, kind enum.ReportKind, filter entity.ReportFilter) (*entity.PurchaseReport, error) {
	filter = filter.Resolved(s.now())

	upstream, err := s.reportRepo.Get(ctx, kind, filter)
	if err != nil {
		return nil, err
	}
	if upstream == nil {
		return nil, apperror.NewNotFoundError("Report")
	}

	report := &entity.PurchaseReport{
		Kind:    kind,
		Title:   kind.Title(),
		Filter:  filter,
		Summary: upstream.Summary,
		Rows:    upstream.Lines(),
		Exports: entity.ExportLinks{
			Excel: s.reportRepo.ExportURL(kind, "excel", filter),
			PDF:   s.reportRepo.ExportURL(kind, "pdf", filter),
		},
	}

	if kind == enum.ReportKindDue {
		asOf := s.now()
		if t, ok := format.ParseDate(filter.ToDate); ok {
			asOf = t
		}
		aged := AgeDueRows(report.Rows, asOf)
		report.Aging = &aged
	}
	return report, nil
}

// AgeDueRows annotates due report rows in place and aggregates them.
func AgeDueRows(rows []entity.ReportRow, asOf time.Time) aging.Report {
	invoices := make([]aging.Invoice, 0, len(rows))
	for _, row := range rows {
		inv := aging.Invoice{
			SupplierID:   row.Text(entity.KeySupplierID...),
			SupplierName: row.Text(entity.KeySupplierName...),
			InvoiceDate:  row.Date(entity.KeyInvoiceDate...),
			DueDate:      row.Date(entity.KeyDueDate...),
			Balance:      row.Amount(entity.KeyBalance...),
		}
		bucket := aging.ClassifyInvoice(inv, asOf)
		days := 0
		switch {
		case inv.DueDate != nil:
			days = aging.DaysOverdue(*inv.DueDate, asOf)
		case inv.InvoiceDate != nil:
			days = aging.DaysOverdue(*inv.InvoiceDate, asOf)
		}
		row["days_overdue"] = days
		row["aging_bucket"] = string(bucket)
		row["aging_label"] = bucket.Label()
		invoices = append(invoices, inv)
	}
	return aging.Aggregate(invoices, asOf)
}

// load fetches the report and the branding concurrently
func (s *ReportService) load(ctx context.Context, kind enum.ReportKind, filter entity.ReportFilter) (*entity.PurchaseReport, entity.TempleBranding, error) {
	var (
		report   *entity.PurchaseReport
		branding EffectiveBranding
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.Report(gctx, kind, filter)
		report = r
		return err
	})
	g.Go(func() error {
		branding = s.branding.Current(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, entity.TempleBranding{}, err
	}
	return report, branding.Branding, nil
}

// Document renders a report as a printable document
func (s *ReportService) Document(ctx context.Context, kind enum.ReportKind, filter entity.ReportFilter, showControls bool) (*RenderedDocument, error) {
	report, branding, err := s.load(ctx, kind, filter)
	if err != nil {
		return nil, err
	}
	return RenderReport(report, branding, s.settings, showControls)
}

// Print renders a report and opens it in a print window
func (s *ReportService) Print(ctx context.Context, kind enum.ReportKind, filter entity.ReportFilter) (*PrintResult, error) {
	doc, err := s.Document(ctx, kind, filter, true)
	if err != nil {
		return nil, err
	}
	reference := string(kind)
	if q := filter.Resolved(s.now()).Query().Encode(); q != "" {
		reference += "?" + q
	}
	return s.prints.Launch(ctx, enum.PrintKindReport, reference, doc, "")
}

// RenderReport builds the report document
func RenderReport(report *entity.PurchaseReport, branding entity.TempleBranding, settings PrintSettings, showControls bool) (*RenderedDocument, error) {
	body := document.Body{
		Meta: []document.Field{
			{Label: "Period", Value: report.Filter.Period()},
			{Label: "View", Value: viewLabel(report.Filter.ViewMode)},
		},
	}
	if len(report.Summary) > 0 {
		body.Sections = append(body.Sections, document.Section{Title: "Summary", Fields: summaryFields(report.Summary)})
	}

	var (
		columns []document.Column
		totals  []document.Total
	)
	if report.Aging != nil && report.Filter.ViewMode == enum.ViewModeSummary {
		body.Sections = append(body.Sections, document.Section{Title: "Aging", Fields: bucketFields(report.Aging.Totals)})
		columns, body.Rows = agingTable(report.Aging)
		totals = []document.Total{{Label: "Total Outstanding", Value: format.Currency(report.Aging.Totals.Total), Emphasis: true}}
	} else {
		if report.Aging != nil {
			body.Sections = append(body.Sections, document.Section{Title: "Aging", Fields: bucketFields(report.Aging.Totals)})
		}
		columns, body.Rows, totals = lineTable(report.Kind, report.Rows)
	}

	html, err := document.Build(document.Config{
		Title:          report.Title,
		Subtitle:       report.Filter.Period(),
		Columns:        columns,
		CurrencySymbol: settings.CurrencySymbol,
		ShowControls:   showControls,
	}, Letterhead(branding), body, totals)
	if err != nil {
		return nil, err
	}
	return newRenderedDocument(html), nil
}

func lineTable(kind enum.ReportKind, rows []entity.ReportRow) ([]document.Column, []document.Row, []document.Total) {
	defs := entity.ReportColumns(kind)
	columns := make([]document.Column, len(defs))
	sums := make([]money.Amount, len(defs))
	for i, c := range defs {
		columns[i] = document.Column{Label: c.Label}
		if c.Kind == entity.ColumnMoney || c.Kind == entity.ColumnNumber {
			columns[i].Align = document.AlignRight
		}
	}

	out := make([]document.Row, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, len(defs))
		for i, c := range defs {
			cells[i] = c.Cell(r)
			if c.Total {
				sums[i] = sums[i].Add(r.Amount(c.Keys...))
			}
		}
		out = append(out, document.Row{Cells: cells})
	}

	var totals []document.Total
	for i, c := range defs {
		if c.Total {
			totals = append(totals, document.Total{Label: "Total " + c.Label, Value: format.Currency(sums[i])})
		}
	}
	if len(totals) > 0 {
		totals[len(totals)-1].Emphasis = true
	}
	return columns, out, totals
}

func agingTable(r *aging.Report) ([]document.Column, []document.Row) {
	columns := []document.Column{{Label: "Supplier"}, {Label: "Invoices", Align: document.AlignRight}}
	for _, b := range aging.All {
		columns = append(columns, document.Column{Label: b.Label(), Align: document.AlignRight})
	}
	columns = append(columns, document.Column{Label: "Total", Align: document.AlignRight})

	rows := make([]document.Row, 0, len(r.Suppliers)+1)
	for _, sa := range r.Suppliers {
		rows = append(rows, document.Row{Cells: bucketCells(dash(sa.SupplierName), fmt.Sprint(sa.InvoiceCount), sa.Buckets)})
	}
	if len(r.Suppliers) > 0 {
		count := 0
		for _, sa := range r.Suppliers {
			count += sa.InvoiceCount
		}
		rows = append(rows, document.Row{Cells: bucketCells("Total", fmt.Sprint(count), r.Totals), Class: "total"})
	}
	return columns, rows
}

func bucketCells(name, count string, b aging.Buckets) []string {
	cells := []string{name, count}
	for _, bucket := range aging.All {
		cells = append(cells, format.Currency(b.Get(bucket)))
	}
	return append(cells, format.Currency(b.Total))
}

func bucketFields(b aging.Buckets) []document.Field {
	fields := make([]document.Field, 0, len(aging.All)+1)
	for _, bucket := range aging.All {
		fields = append(fields, document.Field{Label: bucket.Label(), Value: format.Currency(b.Get(bucket))})
	}
	return append(fields, document.Field{Label: "Total", Value: format.Currency(b.Total)})
}

// summaryFields renders backend summary values sorted by key. Counts stay
// integers, other numbers are money.
func summaryFields(summary map[string]any) []document.Field {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]document.Field, 0, len(keys))
	for _, k := range keys {
		var value string
		switch v := summary[k].(type) {
		case nil:
			value = "-"
		case string:
			value = dash(v)
		case float64:
			if isCountKey(k) {
				value = fmt.Sprintf("%d", int64(v))
			} else {
				value = format.Currency(money.Coerce(v))
			}
		case bool:
			value = map[bool]string{true: "Yes", false: "No"}[v]
		default:
			continue
		}
		fields = append(fields, document.Field{Label: format.Title(k), Value: value})
	}
	return fields
}

func isCountKey(k string) bool {
	for _, marker := range []string{"count", "number", "qty", "quantity", "days"} {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}

func viewLabel(m enum.ViewMode) string {
	if m == enum.ViewModeDetailed {
		return "Detailed"
	}
	return "Summary"
}
