package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/infrastructure/upstream"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerMiddlewareAssignsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	rid := w.Header().Get(RequestIDHeader)
	if rid == "" || w.Body.String() != rid {
		t.Fatalf("request id %q, body %q", rid, w.Body.String())
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/ping?x=1" || fields["request_id"] != rid {
		t.Fatalf("unexpected fields %v", fields)
	}
	for _, v := range fields {
		if s, ok := v.(string); ok && strings.Contains(s, "secret-token") {
			t.Fatal("authorization must never be logged")
		}
	}
}

func TestLoggerMiddlewareLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	for _, path := range []string{"/missing", "/broken"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(RequestIDHeader, "rid-"+path)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	if entries[0].Level != zapcore.WarnLevel || entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("levels = %s %s", entries[0].Level, entries[1].Level)
	}
	if entries[0].ContextMap()["request_id"] != "rid-/missing" {
		t.Fatal("incoming request id should be kept")
	}
}

func TestForwardMiddlewareCarriesCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var auth, rid string
	r := gin.New()
	r.Use(LoggerMiddleware(zap.NewNop()), ForwardMiddleware())
	r.GET("/", func(c *gin.Context) {
		auth, _ = upstream.Authorization(c.Request.Context())
		rid, _ = upstream.RequestID(c.Request.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if auth != "Bearer abc" || rid != "req-42" {
		t.Fatalf("auth %q rid %q", auth, rid)
	}
}

func TestCallerKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.1.2.3:5555"

	if got := CallerKey(c); got != "ip:10.1.2.3" {
		t.Fatalf("caller key = %q", got)
	}

	c.Request.Header.Set("Authorization", "Bearer abc")
	got := CallerKey(c)
	if !strings.HasPrefix(got, "tok:") || len(got) != 20 || strings.Contains(got, "abc") {
		t.Fatalf("caller key = %q", got)
	}
}

func TestRateLimiterPerClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewClientRateLimiter(RateLimiterConfigFor(2, 60))
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(ip, token string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":4000"
		req.Header.Set("Authorization", token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("10.0.0.1", "Bearer a"); code != http.StatusNoContent {
			t.Fatalf("request %d: %d", i, code)
		}
	}
	if code := send("10.0.0.1", "Bearer a"); code != http.StatusTooManyRequests {
		t.Fatalf("expected limit, got %d", code)
	}
	if code := send("10.0.0.2", "Bearer a"); code != http.StatusNoContent {
		t.Fatalf("other client limited: %d", code)
	}
	if rl.Stats()["active_callers"] != 2 {
		t.Fatalf("stats = %v", rl.Stats())
	}
}

func TestRateLimiterIgnoresRotatedTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewClientRateLimiter(RateLimiterConfigFor(2, 60))
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:4000"
		req.Header.Set("Authorization", fmt.Sprintf("Bearer junk-%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusNoContent {
			allowed++
		}
	}
	if allowed != 2 {
		t.Fatalf("allowed %d requests, want 2", allowed)
	}
	if rl.Stats()["active_callers"] != 1 {
		t.Fatalf("stats = %v", rl.Stats())
	}
}

type memoryIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func (m *memoryIdempotencyRepo) GetByKey(ctx context.Context, key, callerKey string) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[callerKey+"|"+key], nil
}

func (m *memoryIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[ikey.CallerKey+"|"+ikey.Key] = ikey
	return nil
}

func (m *memoryIdempotencyRepo) DeleteExpired(ctx context.Context) error { return nil }

func TestIdempotencySkipsServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &memoryIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
	calls := 0
	r := gin.New()
	r.POST("/flaky", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusBadGateway, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "call": calls})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/flaky", nil)
		req.Header.Set(IdempotencyKeyHeader, "k")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(); w.Code != http.StatusBadGateway {
		t.Fatalf("first = %d", w.Code)
	}
	second := send()
	if second.Code != http.StatusOK || second.Header().Get("X-Idempotency-Replayed") != "" {
		t.Fatal("a failed request should be retried, not replayed")
	}
	third := send()
	if third.Header().Get("X-Idempotency-Replayed") != "true" || third.Body.String() != second.Body.String() {
		t.Fatalf("expected replay of the success, got %s", third.Body.String())
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times", calls)
	}
}

func TestIdempotencyRejectsKeyReusedOnAnotherPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &memoryIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
	r := gin.New()
	r.PUT("/bookings/:id", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "id": c.Param("id")})
	})

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, path, nil)
		req.Header.Set(IdempotencyKeyHeader, "same-key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := send("/bookings/101"); w.Code != http.StatusOK {
		t.Fatalf("first = %d", w.Code)
	}
	if w := send("/bookings/101"); w.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatal("the same request should be replayed")
	}
	w := send("/bookings/102")
	if w.Code != http.StatusUnprocessableEntity || strings.Contains(w.Body.String(), `"101"`) {
		t.Fatalf("reused key on another booking = %d %s", w.Code, w.Body.String())
	}
}
