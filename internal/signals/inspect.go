package signals

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/OliverHarrison7/TrueorScam/internal/metrics"
	"github.com/OliverHarrison7/TrueorScam/internal/shared"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PageInfo is what the inspector learned about a URL. Failures surface in
// the Error field, never as a Go error.
type PageInfo struct {
	FinalURL    string `json:"final_url"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Title       string `json:"title,omitempty"`
	Snippet     string `json:"-"`
	FaviconHash string `json:"favicon_hash,omitempty"`
	Error       string `json:"error,omitempty"`
}

type Inspector struct {
	client *resty.Client
	log    *zap.SugaredLogger
}

func NewInspector(timeout time.Duration, log *zap.SugaredLogger) *Inspector {
	if timeout <= 0 {
		timeout = shared.DefaultInspectTimeout
	}
	rc := resty.New()
	rc.SetTimeout(timeout)
	rc.SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	return &Inspector{client: rc, log: log}
}

// Inspect fetches the page behind rawURL, following redirects, and reports
// what a first page load would see. Bounded by the client timeout.
func (i *Inspector) Inspect(ctx context.Context, rawURL string) PageInfo {
	res, err := i.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		metrics.SignalErrors.WithLabelValues("inspect").Inc()
		return PageInfo{Error: err.Error()}
	}

	info := PageInfo{
		FinalURL:    rawURL,
		Status:      res.StatusCode(),
		ContentType: res.Header().Get("Content-Type"),
		Snippet:     shared.Truncate(res.String(), shared.MaxSnippetLen),
	}
	if res.RawResponse != nil && res.RawResponse.Request != nil && res.RawResponse.Request.URL != nil {
		info.FinalURL = res.RawResponse.Request.URL.String()
	}

	if strings.HasPrefix(info.ContentType, "text/html") {
		info.Title = PageTitle(info.Snippet)
		info.FaviconHash = i.faviconHash(ctx, info.FinalURL)
	}
	return info
}

// faviconHash fetches /favicon.ico from the final host. Brand-impersonation
// sites routinely reuse the impersonated brand's favicon, so the hash is a
// cheap lookup key against known-brand icons.
func (i *Inspector) faviconHash(ctx context.Context, finalURL string) string {
	u, err := url.Parse(finalURL)
	if err != nil {
		return ""
	}
	res, err := i.client.R().SetContext(ctx).Get(fmt.Sprintf("%s://%s/favicon.ico", u.Scheme, u.Host))
	if err != nil || res.StatusCode() != http.StatusOK || len(res.Body()) == 0 {
		return ""
	}
	sum := md5.Sum(res.Body())
	return hex.EncodeToString(sum[:])
}

// FetchImage downloads a remote image for inline analysis, capped at
// MaxFetchBytes. Returns the bytes and the served mime type.
func (i *Inspector) FetchImage(ctx context.Context, rawURL string) ([]byte, string, error) {
	res, err := i.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, "", err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", res.StatusCode())
	}
	body := res.Body()
	if len(body) > shared.MaxFetchBytes {
		return nil, "", fmt.Errorf("image larger than %d bytes", shared.MaxFetchBytes)
	}
	mime := res.Header().Get("Content-Type")
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = mime[:idx]
	}
	if !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(body)
	}
	return body, mime, nil
}
