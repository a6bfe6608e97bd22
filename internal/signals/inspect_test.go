package signals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/OliverHarrison7/TrueorScam/internal/shared"

	"go.uber.org/zap"
)

func TestInspectFollowsRedirectsAndTruncates(t *testing.T) {
	long := strings.Repeat("a", shared.MaxSnippetLen+500)
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(long))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	i := NewInspector(2*time.Second, zap.NewNop().Sugar())
	info := i.Inspect(context.Background(), srv.URL+"/start")

	if info.Error != "" {
		t.Fatalf("unexpected inspect error: %s", info.Error)
	}
	if info.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", info.Status)
	}
	if !strings.HasSuffix(info.FinalURL, "/final") {
		t.Fatalf("expected final url after redirect, got %s", info.FinalURL)
	}
	if len(info.Snippet) != shared.MaxSnippetLen {
		t.Fatalf("expected snippet capped at %d, got %d", shared.MaxSnippetLen, len(info.Snippet))
	}
}

func TestInspectHashesFaviconForHTMLPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>hi</body></html>"))
	})
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0x00, 0x00, 0x01, 0x00})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	i := NewInspector(2*time.Second, zap.NewNop().Sugar())
	info := i.Inspect(context.Background(), srv.URL+"/")

	if info.FaviconHash == "" {
		t.Fatal("expected a favicon hash for an html page with a favicon")
	}
	if len(info.FaviconHash) != 32 {
		t.Fatalf("expected 32-char md5 hex, got %q", info.FaviconHash)
	}
}

func TestInspectReportsErrorsAsValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	i := NewInspector(time.Second, zap.NewNop().Sugar())
	info := i.Inspect(context.Background(), srv.URL)

	if info.Error == "" {
		t.Fatal("expected a structured error for an unreachable host")
	}
	if info.Status != 0 {
		t.Fatalf("expected zero status on failure, got %d", info.Status)
	}
}

func TestFetchImage(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	i := NewInspector(time.Second, zap.NewNop().Sugar())
	data, mime, err := i.FetchImage(context.Background(), srv.URL+"/pic.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("expected image/png, got %q", mime)
	}
	if len(data) != len(png) {
		t.Fatalf("expected %d bytes, got %d", len(png), len(data))
	}
}

func TestFetchImageRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	i := NewInspector(time.Second, zap.NewNop().Sugar())
	if _, _, err := i.FetchImage(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected error for 404 image")
	}
}
