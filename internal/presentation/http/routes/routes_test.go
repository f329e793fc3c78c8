package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/application/service"
	"github.com/sangkips/temple-api/internal/config"
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/infrastructure/repository"
	"github.com/sangkips/temple-api/internal/infrastructure/upstream"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/request"
	"github.com/sangkips/temple-api/internal/presentation/http/handler"
	"github.com/sangkips/temple-api/pkg/apperror"
	"github.com/sangkips/temple-api/pkg/printer"
	"github.com/sangkips/temple-api/pkg/printwindow"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeBackend stands in for the temple backend REST API.
type fakeBackend struct {
	mu      sync.Mutex
	auth    []string
	creates int
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.auth = append(b.auth, r.Header.Get("Authorization"))
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/settings":
		_, _ = w.Write([]byte(`{"success":true,"data":{"values":{"temple_name":"Buddha Light Temple","temple_city":"Kuala Lumpur"}}}`))
	case r.URL.Path == "/api/bookings/buddha-lamp/101":
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":101,"booking_number":"BL-2025-0101","customer_name":"Tan Mei Ling","booking_date":"2025-03-07","amount":"5000.00","payment_method":"cash","status":"CONFIRMED"}}`))
	case r.URL.Path == "/api/bookings/buddha-lamp" && r.Method == http.MethodPost:
		b.mu.Lock()
		b.creates++
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":500,"booking_number":"BL-2025-0500","customer_name":"Lim","status":"PENDING"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"not found"}`))
	}
}

func (b *fakeBackend) createCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.creates
}

type apiBody struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := request.RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}

	backend := &fakeBackend{}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(&entity.PrintJob{}, &entity.BrandingSnapshot{}, &entity.IdempotencyKey{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := zap.NewNop()
	client := upstream.NewClient(upstream.Config{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second}, log)
	settings := service.PrintSettings{CurrencySymbol: "RM", CurrencyName: "Ringgit"}
	windows := printwindow.NewStore(printwindow.Config{BaseURL: "/print", TTL: time.Minute, MaxOpen: 8})

	branding := service.NewBrandingService(upstream.NewSettingsRepository(client), repository.NewBrandingSnapshotRepository(db), config.BrandingConfig{Name: "Temple"}, log)
	prints := service.NewPrintService(windows, repository.NewPrintJobRepository(db), 0, log)
	bookings := service.NewBookingService(upstream.NewBookingRepository(client), branding, prints, settings, log)
	reports := service.NewReportService(upstream.NewPurchaseReportRepository(client), branding, prints, settings, log)
	statements := service.NewStatementService(upstream.NewSupplierStatementRepository(client), branding, prints, settings, log)
	printers := service.NewPrinterService(printer.NewNullPrinter(), bookings, branding, settings, "none", 32, log)

	router := Setup(&Handlers{
		Branding:     handler.NewBrandingHandler(branding),
		Booking:      handler.NewBookingHandler(bookings),
		OfferingType: handler.NewOfferingTypeHandler(service.NewOfferingTypeService(upstream.NewOfferingTypeRepository(client))),
		Report:       handler.NewReportHandler(reports, statements),
		Print:        handler.NewPrintHandler(prints),
		Printer:      handler.NewPrinterHandler(printers),
	}, &Deps{
		Cfg: &config.Config{
			App:       config.AppConfig{Name: "temple-api"},
			RateLimit: config.RateLimitConfig{Requests: 100, Duration: 60},
		},
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Logger:          log,
	})
	return router, backend
}

func do(router *gin.Engine, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiBody {
	t.Helper()
	var body apiBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func TestReceiptDocumentAndETag(t *testing.T) {
	router, backend := newTestRouter(t)
	auth := map[string]string{"Authorization": "Bearer staff-token"}

	w := do(router, http.MethodGet, "/api/v1/bookings/buddha-lamp/101/receipt", "", auth)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %s", ct)
	}
	html := w.Body.String()
	for _, want := range []string{"Buddha Light Temple", "BL-2025-0101", "5,000.00", "Five Thousand Ringgit Only"} {
		if !strings.Contains(html, want) {
			t.Fatalf("receipt missing %q", want)
		}
	}
	for _, got := range backend.auth {
		if got != "Bearer staff-token" {
			t.Fatalf("backend saw authorization %q", got)
		}
	}

	etag := w.Header().Get("ETag")
	auth["If-None-Match"] = etag
	again := do(router, http.MethodGet, "/api/v1/bookings/buddha-lamp/101/receipt", "", auth)
	if again.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", again.Code)
	}
}

func TestMissingBookingRedirectsToList(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/bookings/buddha-lamp/999", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var data struct {
		RedirectTo string `json:"redirect_to"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &data); err != nil || data.RedirectTo != service.BookingListPath {
		t.Fatalf("redirect = %q (%v)", data.RedirectTo, err)
	}
}

func TestPrintReceiptOpensWindow(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/bookings/buddha-lamp/101/print", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var result struct {
		Window     printwindow.Window `json:"window"`
		Navigation service.Navigation `json:"navigation"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Navigation.RedirectTo != service.BookingListPath || result.Navigation.DelayMs != 100 {
		t.Fatalf("unexpected navigation %+v", result.Navigation)
	}

	win := do(router, http.MethodGet, result.Window.URL, "", nil)
	if win.Code != http.StatusOK || !strings.Contains(win.Body.String(), "BL-2025-0101") {
		t.Fatalf("window status %d", win.Code)
	}

	jobs := do(router, http.MethodGet, "/api/v1/print-jobs?kind=booking_receipt", "", nil)
	var page struct {
		Items []entity.PrintJob `json:"items"`
	}
	if err := json.Unmarshal(decode(t, jobs).Data, &page); err != nil {
		t.Fatalf("decode jobs: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Reference != "101" {
		t.Fatalf("unexpected journal %+v", page.Items)
	}
}

func TestPrintWindowErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	if w := do(router, http.MethodGet, "/print/not-a-uuid", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id: status = %d", w.Code)
	}
	if w := do(router, http.MethodGet, "/print/6f1c2b1e-3c1d-4a59-9d55-0d3f7b1f2a10", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown window: status = %d", w.Code)
	}
}

func TestReportRequestValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	if w := do(router, http.MethodGet, "/api/v1/purchase/reports/profit", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown kind: status = %d", w.Code)
	}

	w := do(router, http.MethodGet, "/api/v1/purchase/reports/due?preset=fortnight", "", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad preset: status = %d", w.Code)
	}
	if errs := decode(t, w).Errors; len(errs) != 1 || errs[0].Field != "preset" {
		t.Fatalf("unexpected errors %+v", errs)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	router, backend := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/bookings/buddha-lamp", `{"booking_date":"2025-03-07","payment_method":"cash","amount":"88"}`, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	errs := decode(t, w).Errors
	if len(errs) != 1 || errs[0].Field != "customer_name" || errs[0].Message != "customer_name is required" {
		t.Fatalf("unexpected errors %+v", errs)
	}
	if backend.createCount() != 0 {
		t.Fatal("invalid request reached the backend")
	}
}

func TestCreateBookingIdempotent(t *testing.T) {
	router, backend := newTestRouter(t)
	headers := map[string]string{"Idempotency-Key": "create-1", "Authorization": "Bearer staff-token"}
	body := `{"customer_name":"Lim","booking_date":"2025-03-07","payment_method":"cash","amount":88}`

	first := do(router, http.MethodPost, "/api/v1/bookings/buddha-lamp", body, headers)
	if first.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", first.Code, first.Body.String())
	}
	second := do(router, http.MethodPost, "/api/v1/bookings/buddha-lamp", body, headers)
	if second.Code != http.StatusCreated || second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatalf("expected a replay, got %d", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatal("replayed body differs")
	}
	if backend.createCount() != 1 {
		t.Fatalf("backend saw %d creates", backend.createCount())
	}

	headers["Authorization"] = "Bearer other-token"
	if w := do(router, http.MethodPost, "/api/v1/bookings/buddha-lamp", body, headers); w.Header().Get("X-Idempotency-Replayed") != "" {
		t.Fatal("another caller must not get the replay")
	}
}

func TestBrandingEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/settings/branding", "", nil)
	var eff service.EffectiveBranding
	if err := json.Unmarshal(decode(t, w).Data, &eff); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if eff.Source != entity.BrandingSourceLive || eff.Branding.Name != "Buddha Light Temple" {
		t.Fatalf("unexpected branding %+v", eff)
	}
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	do(router, http.MethodPost, "/api/v1/bookings/buddha-lamp/101/print", "", nil)

	w := do(router, http.MethodGet, "/health", "", nil)
	var health struct {
		Status       string         `json:"status"`
		Service      string         `json:"service"`
		PrintWindows int            `json:"print_windows"`
		RateLimiter  map[string]any `json:"rate_limiter"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	if w.Code != http.StatusOK || health.Service != "temple-api" || health.PrintWindows != 1 {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}
	if health.RateLimiter["active_callers"] != float64(1) {
		t.Fatalf("rate limiter stats = %v", health.RateLimiter)
	}
}

func TestBookingDetailDisplayFields(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/bookings/buddha-lamp/101", "", nil)
	var detail struct {
		CustomerName       string `json:"customer_name"`
		BookingDateDisplay string `json:"booking_date_display"`
		StatusLabel        string `json:"status_label"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.CustomerName != "Tan Mei Ling" || detail.BookingDateDisplay != "March 7, 2025" || detail.StatusLabel != "Confirmed" {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestCloseWindow(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/bookings/buddha-lamp/101/print", "", nil)
	var result struct {
		Window printwindow.Window `json:"window"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}

	if w := do(router, http.MethodDelete, result.Window.URL, "", nil); w.Code != http.StatusNoContent {
		t.Fatalf("close = %d", w.Code)
	}
	if w := do(router, http.MethodGet, result.Window.URL, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("closed window still served: %d", w.Code)
	}
	if w := do(router, http.MethodDelete, result.Window.URL, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("second close = %d", w.Code)
	}
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	router, _ := newTestRouter(t)

	limited := false
	for i := 0; i < 120 && !limited; i++ {
		w := do(router, http.MethodGet, "/api/v1/settings/branding", "", map[string]string{
			"Authorization":   fmt.Sprintf("Bearer junk-%d", i),
			"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i%250),
		})
		limited = w.Code == http.StatusTooManyRequests
	}
	if !limited {
		t.Fatal("rotating tokens and forwarded addresses should not escape the limit")
	}
}
