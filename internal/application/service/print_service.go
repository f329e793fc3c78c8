package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/temple-api/internal/config"
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/pkg/apperror"
	"github.com/sangkips/temple-api/pkg/pagination"
	"github.com/sangkips/temple-api/pkg/printwindow"
	"github.com/sangkips/temple-api/pkg/utils"
	"github.com/sangkips/temple-api/pkg/words"
	"go.uber.org/zap"
)

// DefaultNavigateDelay is how long the page waits after a launch before
// leaving for its list view.
const DefaultNavigateDelay = 100 * time.Millisecond

// PrintSettings are the currency and numbering conventions of documents
type PrintSettings struct {
	CurrencySymbol string
	CurrencyName   string
	Numbering      words.Numbering
}

// PrintSettingsFromConfig reads print settings from config
func PrintSettingsFromConfig(cfg config.PrintConfig) PrintSettings {
	return PrintSettings{
		CurrencySymbol: cfg.CurrencySymbol,
		CurrencyName:   cfg.CurrencyName,
		Numbering:      words.ParseNumbering(cfg.Numbering),
	}
}

// RenderedDocument is a generated printable document
type RenderedDocument struct {
	HTML   string
	Digest string
}

func newRenderedDocument(html string) *RenderedDocument {
	return &RenderedDocument{HTML: html, Digest: utils.DigestString(html)}
}

// WindowStore launches print windows and serves their documents
type WindowStore interface {
	printwindow.Launcher
	Open(id uuid.UUID) (string, bool)
	Close(id uuid.UUID)
	OpenCount() int
}

// Navigation tells the page where to go once the window holds the document
type Navigation struct {
	RedirectTo string `json:"redirect_to"`
	DelayMs    int64  `json:"delay_ms"`
}

// PrintResult is a successful launch
type PrintResult struct {
	Job        *entity.PrintJob    `json:"job"`
	Window     *printwindow.Window `json:"window"`
	Navigation *Navigation         `json:"navigation,omitempty"`
}

// PrintService hands documents to print windows and keeps the print journal
type PrintService struct {
	windows       WindowStore
	jobRepo       repository.PrintJobRepository
	navigateDelay time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewPrintService creates a new print service
func NewPrintService(
	windows WindowStore,
	jobRepo repository.PrintJobRepository,
	navigateDelay time.Duration,
	logger *zap.Logger,
) *PrintService {
	if navigateDelay <= 0 {
		navigateDelay = DefaultNavigateDelay
	}
	return &PrintService{
		windows:       windows,
		jobRepo:       jobRepo,
		navigateDelay: navigateDelay,
		logger:        logger,
		now:           time.Now,
	}
}

// Launch writes doc into a new print window and records the job. A
// blocked window is journaled and reported as apperror.ErrPopupBlocked.
// When redirectTo is set the result carries the navigation hint; the
// window already holds the document by then.
func (s *PrintService) Launch(ctx context.Context, kind enum.PrintKind, reference string, doc *RenderedDocument, redirectTo string) (*PrintResult, error) {
	job := &entity.PrintJob{
		Kind:      kind,
		Reference: reference,
		Digest:    doc.Digest,
		CreatedAt: s.now().UTC(),
	}

	window, err := s.windows.Launch(ctx, doc.HTML)
	if err != nil {
		if !errors.Is(err, printwindow.ErrPopupBlocked) {
			return nil, fmt.Errorf("failed to launch print window: %w", err)
		}
		job.Status = enum.PrintJobStatusBlocked
		s.record(ctx, job)
		s.logger.Info("print window blocked",
			zap.String("kind", string(kind)),
			zap.String("reference", reference),
		)
		return nil, apperror.ErrPopupBlocked
	}

	job.Status = enum.PrintJobStatusLaunched
	job.WindowID = &window.ID
	s.record(ctx, job)

	result := &PrintResult{Job: job, Window: window}
	if redirectTo != "" {
		result.Navigation = &Navigation{
			RedirectTo: redirectTo,
			DelayMs:    s.navigateDelay.Milliseconds(),
		}
	}
	return result, nil
}

// The journal is best effort, a failed write never fails the print.
func (s *PrintService) record(ctx context.Context, job *entity.PrintJob) {
	if err := s.jobRepo.Create(ctx, job); err != nil {
		s.logger.Warn("failed to record print job",
			zap.String("kind", string(job.Kind)),
			zap.String("reference", job.Reference),
			zap.Error(err),
		)
	}
}

// OpenWindow returns the document of a live print window
func (s *PrintService) OpenWindow(id uuid.UUID) (*RenderedDocument, error) {
	html, ok := s.windows.Open(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Print window")
	}
	return newRenderedDocument(html), nil
}

// CloseWindow discards a print window once the page is done with it
func (s *PrintService) CloseWindow(id uuid.UUID) error {
	if _, ok := s.windows.Open(id); !ok {
		return apperror.NewNotFoundError("Print window")
	}
	s.windows.Close(id)
	return nil
}

// OpenWindows returns the number of live print windows
func (s *PrintService) OpenWindows() int {
	return s.windows.OpenCount()
}

// ListJobs returns the print journal newest first
func (s *PrintService) ListJobs(ctx context.Context, filter repository.PrintJobFilter, params *pagination.CursorParams) (*pagination.CursorPaginatedResult[entity.PrintJob], error) {
	if params == nil {
		params = pagination.DefaultCursorParams()
	}
	params.Validate()

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	jobs, err := s.jobRepo.ListCursor(ctx, filter, cursor, params.Direction, params.Limit)
	if err != nil {
		return nil, err
	}

	page, items := pagination.NewCursorPagination(jobs, params.Limit, params.Direction, cursor != nil,
		func(j entity.PrintJob) string { return j.ID.String() },
		func(j entity.PrintJob) time.Time { return j.CreatedAt },
	)
	return pagination.NewCursorPaginatedResult(items, page), nil
}
