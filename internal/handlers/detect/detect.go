// Package detect routes a submitted artifact to the right collectors and
// prompt, runs inference, and shapes the verdict response.
package detect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/OliverHarrison7/TrueorScam/internal/cache"
	"github.com/OliverHarrison7/TrueorScam/internal/database"
	"github.com/OliverHarrison7/TrueorScam/internal/engine"
	"github.com/OliverHarrison7/TrueorScam/internal/metrics"
	"github.com/OliverHarrison7/TrueorScam/internal/prompt"
	"github.com/OliverHarrison7/TrueorScam/internal/setup"
	"github.com/OliverHarrison7/TrueorScam/internal/shared"
	"github.com/OliverHarrison7/TrueorScam/internal/signals"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Input type discriminators returned to the client for URL input.
const (
	TypeImageURL = "image_url"
	TypeVideoURL = "video_url"
	TypeLink     = "link"
	TypeClaim    = "claim"
	TypeUpload   = "upload"
)

type DetectManager struct {
	Engine       *engine.Engine
	Inspector    *signals.Inspector
	SafeBrowsing *signals.SafeBrowsing
	Cache        cache.Store
	Scans        *database.ScanStore
	Log          *zap.SugaredLogger

	// Injectable for tests; whois lookups hit the network.
	domainAge func(domain string) (int, string)
}

func NewDetectManager(
	eng *engine.Engine,
	inspector *signals.Inspector,
	sb *signals.SafeBrowsing,
	store cache.Store,
	scans *database.ScanStore,
	log *zap.SugaredLogger,
) *DetectManager {
	return &DetectManager{
		Engine:       eng,
		Inspector:    inspector,
		SafeBrowsing: sb,
		Cache:        store,
		Scans:        scans,
		Log:          log,
		domainAge:    signals.DomainAge,
	}
}

type detectRequestBody struct {
	Input   string `json:"input"`
	Context string `json:"context,omitempty"`
}

// Detect is the single detection entrypoint: multipart file + context, or
// JSON {input, context?}.
func (dm *DetectManager) Detect(cc echo.Context) error {
	c := cc.(*setup.Context)
	start := time.Now()

	if file, err := c.FormFile("file"); err == nil {
		return dm.detectUpload(c, file, c.FormValue("context"), start)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		c.Log.Warnw("Failed to read request body", "error", err.Error())
		return c.String(http.StatusBadRequest, "failed to read request body")
	}

	var req detectRequestBody
	if err := json.Unmarshal(body, &req); err != nil {
		c.Log.Warnw("Failed to parse request body", "error", err.Error())
		return c.String(http.StatusBadRequest, "invalid JSON format")
	}

	input := strings.TrimSpace(req.Input)
	if input == "" {
		return c.JSON(shared.ErrMissingInput.StatusCode, map[string]string{"error": shared.ErrMissingInput.Err.Error()})
	}

	if isHTTPURL(input) {
		return dm.detectURL(c, input, req.Context, start)
	}
	return dm.detectClaim(c, input, req.Context, start)
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

var videoHosts = []string{
	"youtube.com", "youtu.be", "tiktok.com", "vimeo.com",
	"twitch.tv", "dailymotion.com", "rumble.com",
}

func isHTTPURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// classifyURL sniffs what kind of artifact a URL points at.
func classifyURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return TypeLink
	}

	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return TypeImageURL
		}
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, vh := range videoHosts {
		if host == vh || strings.HasSuffix(host, "."+vh) {
			return TypeVideoURL
		}
	}
	return TypeLink
}

func (dm *DetectManager) detectURL(c *setup.Context, input, userContext string, start time.Time) error {
	inputType := classifyURL(input)
	cacheKey := "v1:verdict:" + shared.InputHash(input, userContext)

	if cached, ok := dm.Cache.Get(c.Request().Context(), cacheKey); ok {
		metrics.CacheHits.WithLabelValues("hit").Inc()
		var resp map[string]any
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			resp["cached"] = true
			return c.JSON(http.StatusOK, resp)
		}
		c.Log.Warnw("Dropping unreadable cache entry", "key", cacheKey)
	}
	metrics.CacheHits.WithLabelValues("miss").Inc()

	var (
		req       *engine.Request
		collected any
	)
	switch inputType {
	case TypeImageURL:
		req, collected = dm.buildImageURLRequest(c, input, userContext)
	case TypeVideoURL:
		req = prompt.Video(input, userContext, signals.URLShape(input))
	default:
		req, collected = dm.buildLinkRequest(c, input, userContext)
	}

	return dm.respond(c, req, respondInput{
		inputType: inputType,
		inputHash: shared.InputHash(input, userContext),
		cacheKey:  cacheKey,
		collected: collected,
		start:     start,
	})
}

func (dm *DetectManager) detectClaim(c *setup.Context, input, userContext string, start time.Time) error {
	return dm.respond(c, prompt.Claim(input, userContext), respondInput{
		inputType: TypeClaim,
		inputHash: shared.InputHash(input, userContext),
		start:     start,
	})
}

func (dm *DetectManager) detectUpload(c *setup.Context, file *multipart.FileHeader, userContext string, start time.Time) error {
	if file.Size > shared.MaxUploadBytes {
		return c.JSON(shared.ErrUploadTooLarge.StatusCode, map[string]string{"error": shared.ErrUploadTooLarge.Err.Error()})
	}

	src, err := file.Open()
	if err != nil {
		c.Log.Warnw("Failed to open uploaded file", "error", err.Error())
		return c.String(http.StatusBadRequest, "failed to read uploaded file")
	}
	defer func() {
		_ = src.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(src, shared.MaxUploadBytes+1))
	if err != nil {
		c.Log.Warnw("Failed to read uploaded file", "error", err.Error())
		return c.String(http.StatusBadRequest, "failed to read uploaded file")
	}
	if len(data) > shared.MaxUploadBytes {
		return c.JSON(shared.ErrUploadTooLarge.StatusCode, map[string]string{"error": shared.ErrUploadTooLarge.Err.Error()})
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	exifInfo := signals.ExtractEXIF(data)
	req := prompt.Image(userContext, exifInfo, data, mimeType)

	return dm.respond(c, req, respondInput{
		inputType: TypeUpload,
		inputHash: shared.InputHash(file.Filename, userContext),
		collected: exifInfo,
		start:     start,
	})
}

type respondInput struct {
	inputType string
	inputHash string
	cacheKey  string
	collected any
	start     time.Time
}

// respond runs inference and always answers 200 with a verdict: model
// verdict, mock fallback, or the category's neutral default when inference
// hard-errored.
func (dm *DetectManager) respond(c *setup.Context, req *engine.Request, in respondInput) error {
	outcome, err := dm.Engine.Infer(c.Request().Context(), req, 0)

	resp := map[string]any{}
	switch {
	case err != nil:
		// "No AI verdict available": degrade, never fail the request.
		var reqErr *shared.RequestError
		var parseErr *engine.ParseError
		switch {
		case errors.As(err, &reqErr):
			c.Log.Warnw("Model rejected request", "status", reqErr.StatusCode, "error", reqErr.Err.Error())
		case errors.As(err, &parseErr):
			c.Log.Warnw("Model returned unusable JSON", "raw", shared.Truncate(parseErr.Raw, 500))
		default:
			c.Log.Warnw("Inference failed", "error", err.Error())
		}
		for k, v := range neutralVerdict(req.Category) {
			resp[k] = v
		}
		resp["mode"] = "degraded"
		resp["error"] = "no AI verdict available"
	default:
		for k, v := range outcome.Verdict {
			resp[k] = v
		}
		resp["mode"] = outcome.Mode
		if outcome.Mode == engine.ModeMock {
			resp["mock_reason"] = string(outcome.MockReason)
		}
	}

	if in.inputType != TypeUpload && in.inputType != TypeClaim {
		resp["type"] = in.inputType
	}
	if in.collected != nil {
		resp["collected_signals"] = in.collected
	}
	resp["cached"] = false

	mode, _ := resp["mode"].(string)
	metrics.VerdictCount.WithLabelValues(in.inputType, mode).Inc()
	metrics.RequestDuration.WithLabelValues(in.inputType).Observe(time.Since(in.start).Seconds())

	encoded, encErr := json.Marshal(resp)
	if encErr != nil {
		c.Log.Errorw("Failed to encode response", "error", encErr.Error())
		return c.String(http.StatusInternalServerError, shared.ErrInternalServerError.Err.Error())
	}

	if in.cacheKey != "" && mode == engine.ModeAI {
		dm.Cache.Set(c.Request().Context(), in.cacheKey, string(encoded), shared.VerdictCacheTTL)
	}

	go dm.saveScan(in.inputType, in.inputHash, mode, encoded)

	return c.JSONBlob(http.StatusOK, encoded)
}

func (dm *DetectManager) saveScan(inputType, inputHash, mode string, verdict []byte) {
	if dm.Scans == nil {
		return
	}
	ctx, cancel := contextWithTimeout()
	defer cancel()
	dm.Scans.SaveScan(ctx, &database.ScanRecord{
		InputType: inputType,
		InputHash: inputHash,
		Mode:      mode,
		Verdict:   json.RawMessage(verdict),
		CreatedAt: time.Now(),
	})
}

// neutralVerdict is the caller-side default when no AI verdict exists at
// all: middle-of-the-road values that neither clear nor condemn the input.
func neutralVerdict(cat engine.Category) map[string]any {
	switch cat {
	case engine.CategoryClaim:
		return map[string]any{
			"verdict":         "unverified",
			"checks":          []any{},
			"what_to_collect": []any{"A link to the original source of the claim"},
			"advice":          "Verification is temporarily unavailable; do not share this claim until it can be checked.",
		}
	case engine.CategoryImage:
		return map[string]any{
			"verdict":    "uncertain",
			"indicators": []any{},
			"advice":     "Analysis is temporarily unavailable; verify this image through a reverse image search.",
		}
	default:
		return map[string]any{
			"risk":    "suspicious",
			"signals": []any{},
			"advice":  fmt.Sprintf("Analysis is temporarily unavailable; avoid entering personal details on this %s until it can be checked.", cat),
		}
	}
}
