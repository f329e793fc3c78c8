package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sangkips/temple-api/internal/config"
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/pkg/apperror"
	"github.com/sangkips/temple-api/pkg/pagination"
	"github.com/sangkips/temple-api/pkg/printwindow"
	"github.com/sangkips/temple-api/pkg/words"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errBackendDown = errors.New("dial tcp: connection refused")

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

var testPrintSettings = PrintSettings{
	CurrencySymbol: "RM",
	CurrencyName:   "Ringgit",
	Numbering:      words.ShortScale,
}

type fakeSettingsRepo struct {
	mu     sync.Mutex
	values map[string]any
	err    error
	calls  int
}

func (f *fakeSettingsRepo) SystemValues(ctx context.Context) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.values, nil
}

func (f *fakeSettingsRepo) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

type fakeSnapshotRepo struct {
	mu       sync.Mutex
	snapshot *entity.BrandingSnapshot
	saves    int
}

func (f *fakeSnapshotRepo) Get(ctx context.Context) (*entity.BrandingSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot, nil
}

func (f *fakeSnapshotRepo) Save(ctx context.Context, s *entity.BrandingSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = s
	f.saves++
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*entity.BookingRecord
	updates  []entity.BookingForm
	listErr  error
}

func newFakeBookingRepo(records ...*entity.BookingRecord) *fakeBookingRepo {
	f := &fakeBookingRepo{bookings: map[string]*entity.BookingRecord{}}
	for _, r := range records {
		f.bookings[r.ID.String()] = r
	}
	return f
}

func (f *fakeBookingRepo) List(ctx context.Context) ([]entity.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.BookingRecord, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*entity.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) Create(ctx context.Context, form entity.BookingForm) (*entity.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := entity.ID(string(rune('a' + len(f.bookings))))
	b := &entity.BookingRecord{
		ID:            id,
		BookingNumber: "BL-NEW-" + id.String(),
		CustomerName:  form.CustomerName,
		BookingDate:   form.BookingDate,
		Amount:        form.Amount,
		PaymentMethod: form.PaymentMethod,
		Status:        form.Status,
	}
	f.bookings[id.String()] = b
	return b, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, id string, form entity.BookingForm) (*entity.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	f.updates = append(f.updates, form)
	b.CustomerName = form.CustomerName
	b.Notes = form.Notes
	b.Amount = form.Amount
	b.Status = form.Status
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id string) (*entity.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	b.Status = enum.BookingStatusCancelled
	cp := *b
	return &cp, nil
}

type fakeReportRepo struct {
	report    *entity.UpstreamReport
	err       error
	gotKind   enum.ReportKind
	gotFilter entity.ReportFilter
}

func (f *fakeReportRepo) Get(ctx context.Context, kind enum.ReportKind, filter entity.ReportFilter) (*entity.UpstreamReport, error) {
	f.gotKind, f.gotFilter = kind, filter
	return f.report, f.err
}

func (f *fakeReportRepo) ExportURL(kind enum.ReportKind, format string, filter entity.ReportFilter) string {
	return "https://backend.test/purchase/reports/" + string(kind) + "/" + format + "?" + filter.Query().Encode()
}

type fakeStatementRepo struct {
	statement *entity.SupplierStatement
	err       error
}

func (f *fakeStatementRepo) Get(ctx context.Context, supplierID, fromDate, toDate string) (*entity.SupplierStatement, error) {
	return f.statement, f.err
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs []entity.PrintJob
	err  error
}

func (f *fakeJobRepo) Create(ctx context.Context, job *entity.PrintJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, *job)
	return nil
}

func (f *fakeJobRepo) ListCursor(ctx context.Context, filter repository.PrintJobFilter, cursor *pagination.Cursor, direction pagination.CursorDirection, limit int) ([]entity.PrintJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.PrintJob
	for i := len(f.jobs) - 1; i >= 0 && len(out) < limit+1; i-- {
		if filter.Kind != "" && string(f.jobs[i].Kind) != filter.Kind {
			continue
		}
		out = append(out, f.jobs[i])
	}
	return out, nil
}

func (f *fakeJobRepo) all() []entity.PrintJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.PrintJob(nil), f.jobs...)
}

// testEnv wires the services together over fakes.
type testEnv struct {
	settings  *fakeSettingsRepo
	snapshots *fakeSnapshotRepo
	bookings  *fakeBookingRepo
	reports   *fakeReportRepo
	stmts     *fakeStatementRepo
	jobs      *fakeJobRepo
	windows   *printwindow.Store
	logs      *observer.ObservedLogs

	branding  *BrandingService
	prints    *PrintService
	booking   *BookingService
	report    *ReportService
	statement *StatementService
}

func templeSettings() map[string]any {
	return map[string]any{
		"temple_name":        "Buddha Light Temple",
		"temple_address":     "1 Jalan Damai",
		"temple_city":        "Kuala Lumpur",
		"temple_postal_code": "50450",
		"temple_phone":       "03-1234 5678",
	}
}

func newTestEnv(maxOpen int, records ...*entity.BookingRecord) *testEnv {
	logger, logs := observedLogger()
	env := &testEnv{
		settings:  &fakeSettingsRepo{values: templeSettings()},
		snapshots: &fakeSnapshotRepo{},
		bookings:  newFakeBookingRepo(records...),
		reports:   &fakeReportRepo{},
		stmts:     &fakeStatementRepo{},
		jobs:      &fakeJobRepo{},
		windows:   printwindow.NewStore(printwindow.Config{BaseURL: "/print", TTL: time.Minute, MaxOpen: maxOpen}),
		logs:      logs,
	}
	env.branding = NewBrandingService(env.settings, env.snapshots, config.BrandingConfig{Name: "Default Temple"}, logger)
	env.prints = NewPrintService(env.windows, env.jobs, 0, logger)
	env.booking = NewBookingService(env.bookings, env.branding, env.prints, testPrintSettings, logger)
	env.report = NewReportService(env.reports, env.branding, env.prints, testPrintSettings, logger)
	env.statement = NewStatementService(env.stmts, env.branding, env.prints, testPrintSettings, logger)
	return env
}

func appCode(err error) int {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}
