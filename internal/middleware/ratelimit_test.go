package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OliverHarrison7/TrueorScam/internal/cache"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	log := zap.NewNop().Sugar()

	handler := NewTrackMiddleware(log)(
		NewRateLimitMiddleware(cache.NewMemory(), 2, time.Minute)(
			func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
		),
	)

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/v1/detect", nil)
		req.RemoteAddr = "198.51.100.7:1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := do(); code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", code)
	}
}

func TestRateLimitIsPerClient(t *testing.T) {
	e := echo.New()
	log := zap.NewNop().Sugar()
	store := cache.NewMemory()

	handler := NewTrackMiddleware(log)(
		NewRateLimitMiddleware(store, 1, time.Minute)(
			func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
		),
	)

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/detect", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Code
	}

	if code := do("198.51.100.7:1234"); code != http.StatusOK {
		t.Fatalf("client a: expected 200, got %d", code)
	}
	if code := do("198.51.100.8:1234"); code != http.StatusOK {
		t.Fatalf("client b should have its own window, got %d", code)
	}
	if code := do("198.51.100.7:5678"); code != http.StatusTooManyRequests {
		t.Fatalf("client a second hit: expected 429, got %d", code)
	}
}
