package service

import (
	"context"
	"net/url"
	"time"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/pkg/apperror"
	"github.com/sangkips/temple-api/pkg/document"
	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/ledger"
	"github.com/sangkips/temple-api/pkg/money"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SuppliersPath is the admin supplier list view
const SuppliersPath = "/purchase/suppliers"

// StatementService builds supplier statements
type StatementService struct {
	statementRepo repository.SupplierStatementRepository
	branding      *BrandingService
	prints        *PrintService
	settings      PrintSettings
	logger        *zap.Logger
}

// NewStatementService creates a new statement service
func NewStatementService(
	statementRepo repository.SupplierStatementRepository,
	branding *BrandingService,
	prints *PrintService,
	settings PrintSettings,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		statementRepo: statementRepo,
		branding:      branding,
		prints:        prints,
		settings:      settings,
		logger:        logger,
	}
}

// StatementInput selects a supplier statement
type StatementInput struct {
	SupplierID string
	FromDate   string
	ToDate     string
}

// StatementView is a statement with its running balance recomputed
type StatementView struct {
	Supplier         entity.StatementSupplier `json:"supplier"`
	Period           entity.StatementPeriod   `json:"period"`
	Ledger           ledger.Ledger            `json:"ledger"`
	TotalInvoices    money.Amount             `json:"total_invoices"`
	TotalPayments    money.Amount             `json:"total_payments"`
	ReportedInvoices money.Amount             `json:"reported_total_invoices"`
	ReportedClosing  money.Amount             `json:"reported_closing_balance"`
	Mismatches       []ledger.Mismatch        `json:"mismatches,omitempty"`
}

// Statement fetches a statement and recomputes its ledger. Rows whose
// reported balance disagrees with the recomputed one are logged.
func (s *StatementService) Statement(ctx context.Context, input StatementInput) (*StatementView, error) {
	stmt, err := s.statementRepo.Get(ctx, input.SupplierID, input.FromDate, input.ToDate)
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, apperror.NewNotFoundRedirect("Supplier", SuppliersPath)
	}

	view := BuildStatementView(stmt)
	if view.Period.From == "" {
		view.Period.From = input.FromDate
	}
	if view.Period.To == "" {
		view.Period.To = input.ToDate
	}
	for _, m := range view.Mismatches {
		s.logger.Warn("statement balance mismatch",
			zap.String("supplier_id", input.SupplierID),
			zap.Int("row", m.Index),
			zap.String("reported", m.Reported.String()),
			zap.String("computed", m.Computed.String()),
		)
	}
	return view, nil
}

// BuildStatementView recomputes the running balance of stmt
func BuildStatementView(stmt *entity.SupplierStatement) *StatementView {
	l := ledger.Build(stmt.OpeningBalance, stmt.LedgerTransactions())
	return &StatementView{
		Supplier:         stmt.Supplier,
		Period:           stmt.Period,
		Ledger:           l,
		TotalInvoices:    l.TotalDebit,
		TotalPayments:    l.TotalCredit,
		ReportedInvoices: stmt.InvoicedTotal(),
		ReportedClosing:  stmt.ClosingBalance,
		Mismatches:       l.Mismatches(),
	}
}

func (s *StatementService) load(ctx context.Context, input StatementInput) (*StatementView, entity.TempleBranding, error) {
	var (
		view     *StatementView
		branding EffectiveBranding
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.Statement(gctx, input)
		view = v
		return err
	})
	g.Go(func() error {
		branding = s.branding.Current(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, entity.TempleBranding{}, err
	}
	return view, branding.Branding, nil
}

// Document renders a statement as a printable document
func (s *StatementService) Document(ctx context.Context, input StatementInput, showControls bool) (*RenderedDocument, error) {
	view, branding, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}
	return RenderStatement(view, branding, s.settings, showControls)
}

// Print renders a statement and opens it in a print window
func (s *StatementService) Print(ctx context.Context, input StatementInput) (*PrintResult, error) {
	doc, err := s.Document(ctx, input, true)
	if err != nil {
		return nil, err
	}
	reference := input.SupplierID
	q := url.Values{}
	if input.FromDate != "" {
		q.Set("from_date", input.FromDate)
	}
	if input.ToDate != "" {
		q.Set("to_date", input.ToDate)
	}
	if len(q) > 0 {
		reference += "?" + q.Encode()
	}
	return s.prints.Launch(ctx, enum.PrintKindSupplierStatement, reference, doc, "")
}

// RenderStatement builds the statement document. The opening balance row
// is always present, so an empty period prints opening and closing only.
func RenderStatement(view *StatementView, branding entity.TempleBranding, settings PrintSettings, showControls bool) (*RenderedDocument, error) {
	l := view.Ledger
	rows := make([]document.Row, 0, len(l.Rows)+2)
	rows = append(rows, document.Row{
		Cells: []string{printDateOrBlank(view.Period.From), "", "", "Opening Balance", "", "", l.OpeningLabel},
		Class: "opening",
	})
	for _, r := range l.Rows {
		rows = append(rows, document.Row{Cells: []string{
			printDateOrDash(r.Date),
			dash(r.Type),
			dash(r.Reference),
			dash(r.Description),
			amountOrBlank(r.Debit),
			amountOrBlank(r.Credit),
			r.BalanceLabel,
		}})
	}
	rows = append(rows, document.Row{
		Cells: []string{printDateOrBlank(view.Period.To), "", "", "Closing Balance", format.Currency(l.TotalDebit), format.Currency(l.TotalCredit), l.ClosingLabel},
		Class: "closing",
	})

	supplier := []document.Field{{Label: "Supplier", Value: dash(view.Supplier.Name)}}
	if view.Supplier.Phone != "" {
		supplier = append(supplier, document.Field{Label: "Phone", Value: view.Supplier.Phone})
	}
	if view.Supplier.Email != "" {
		supplier = append(supplier, document.Field{Label: "Email", Value: view.Supplier.Email})
	}
	if view.Supplier.Address != "" {
		supplier = append(supplier, document.Field{Label: "Address", Value: view.Supplier.Address})
	}

	period := entity.ReportFilter{FromDate: view.Period.From, ToDate: view.Period.To}.Period()
	html, err := document.Build(document.Config{
		Title:    "Supplier Statement",
		Subtitle: period,
		Columns: []document.Column{
			{Label: "Date"},
			{Label: "Type"},
			{Label: "Reference"},
			{Label: "Description"},
			{Label: "Debit", Align: document.AlignRight},
			{Label: "Credit", Align: document.AlignRight},
			{Label: "Balance", Align: document.AlignRight},
		},
		CurrencySymbol: settings.CurrencySymbol,
		ShowControls:   showControls,
	}, Letterhead(branding), document.Body{
		Meta:     []document.Field{{Label: "Period", Value: period}},
		Sections: []document.Section{{Title: "Supplier", Fields: supplier}},
		Rows:     rows,
		Notes:    []string{"Dr: amount payable to supplier. Cr: credit or advance with supplier."},
	}, []document.Total{
		{Label: "Opening Balance", Value: l.OpeningLabel},
		{Label: "Total Invoices", Value: format.Currency(view.TotalInvoices)},
		{Label: "Total Payments", Value: format.Currency(view.TotalPayments)},
		{Label: "Closing Balance", Value: l.ClosingLabel, Emphasis: true},
	})
	if err != nil {
		return nil, err
	}
	return newRenderedDocument(html), nil
}

func printDateOrBlank(s string) string {
	if s == "" {
		return ""
	}
	return format.PrintDate(s)
}

func printDateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return format.PrintDate(*t)
}

func amountOrBlank(a money.Amount) string {
	if a.IsZero() {
		return ""
	}
	return format.Currency(a)
}
