package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock ──

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

type fakeAuth struct {
	valid map[string]string // token → email
}

func (f *fakeAuth) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResult, error) {
	return nil, nil
}
func (f *fakeAuth) Check(_ context.Context, token string) *dto.AuthCheckResponse {
	if email, ok := f.valid[token]; ok {
		return &dto.AuthCheckResponse{IsAuthenticated: true, Email: email}
	}
	return &dto.AuthCheckResponse{}
}
func (f *fakeAuth) Logout(_ context.Context, _ string) error { return nil }

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	cases := []struct {
		name    string
		limiter *fakeLimiter
		want    int
	}{
		{"allowed", &fakeLimiter{allowed: true}, http.StatusOK},
		{"blocked", &fakeLimiter{allowed: false}, http.StatusTooManyRequests},
		{"backend down", &fakeLimiter{err: errors.New("redis down")}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/api/login", RateLimit(tc.limiter, 5, time.Minute, zap.NewNop()), okHandler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("POST", "/api/login", nil))

			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
			if len(tc.limiter.keys) != 1 || !strings.HasSuffix(tc.limiter.keys[0], ":/api/login") {
				t.Errorf("unexpected limiter keys: %v", tc.limiter.keys)
			}
		})
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/api/login", RateLimit(nil, 5, time.Minute, zap.NewNop()), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/login", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ── SessionAuth ──

func TestSessionAuth(t *testing.T) {
	auth := &fakeAuth{valid: map[string]string{"good": "pmo@example.com"}}
	r := gin.New()
	r.GET("/api/projects", SessionAuth(auth, "authToken"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(sessionEmailKey))
	})

	cases := []struct {
		name   string
		cookie string
		want   int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"bad token", "bad", http.StatusUnauthorized},
		{"valid", "good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/projects", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "authToken", Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
			if tc.want == http.StatusOK && w.Body.String() != "pmo@example.com" {
				t.Errorf("expected session email in context, got %q", w.Body.String())
			}
		})
	}
}

// ── CORS ──

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000/"}))
	r.GET("/api/statistics", okHandler)

	req := httptest.NewRequest("GET", "/api/statistics", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin echoed, got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("expected credentials allowed")
	}

	req = httptest.NewRequest("OPTIONS", "/api/statistics", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be echoed")
	}
}

// ── BodyLimit / RequestID ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/api/prospections", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/prospections", bytes.NewReader(make([]byte, 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/prospections", bytes.NewReader([]byte("{}"))))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/health", okHandler)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected inbound id reused, got %q", got)
	}

	req = httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 100))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("expected generated uuid for oversized id, got %q", got)
	}
}
