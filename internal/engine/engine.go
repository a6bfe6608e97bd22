// Package engine sends assembled prompts to the generative model and turns
// whatever comes back into exactly one verdict outcome: a parsed model
// verdict, a deterministic mock fallback, or a hard error.
package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/OliverHarrison7/TrueorScam/internal/metrics"
	"github.com/OliverHarrison7/TrueorScam/internal/shared"

	"go.uber.org/zap"
)

// Category selects which verdict shape the model is asked for. It is set by
// the caller that built the prompt, never re-derived from the prompt text.
type Category string

const (
	CategoryLink  Category = "link"
	CategoryVideo Category = "video"
	CategoryImage Category = "image"
	CategoryClaim Category = "claim"
)

// Part is a single prompt segment, either text or inline image bytes.
type Part struct {
	Text     string
	MimeType string
	Data     []byte
}

// Request is built fresh per user request and consumed once.
type Request struct {
	Category Category
	Parts    []Part
}

// Mode tags where a verdict came from.
const (
	ModeAI   = "ai"
	ModeMock = "mock"
)

// MockReason explains why the engine synthesized a verdict locally.
type MockReason string

const (
	ReasonNoKey        MockReason = "no_key"
	ReasonOverloaded   MockReason = "overloaded"
	ReasonNetworkError MockReason = "network_error"
)

// Outcome is the single result of an Infer call. Verdict is the parsed model
// object, unvalidated against the expected shape; callers own defensive
// field access.
type Outcome struct {
	Verdict    map[string]any
	Mode       string
	MockReason MockReason
	Attempts   int
}

// ParseError is returned when the model answered 200 but its text carried no
// parseable JSON object. Raw holds the full model text for diagnosis.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad/empty JSON in model response: %s", shared.Truncate(e.Raw, 200))
}

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxAttempts int
	Timeout     time.Duration
}

type Engine struct {
	apiKey      string
	model       string
	baseURL     string
	maxAttempts int
	client      *http.Client
	sleep       func(time.Duration)
	log         *zap.SugaredLogger
}

func New(cfg Config, log *zap.SugaredLogger) *Engine {
	if cfg.Model == "" {
		cfg.Model = shared.DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = shared.DefaultMaxAttempts
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = shared.DefaultRequestTimeout
	}
	return &Engine{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		maxAttempts: cfg.MaxAttempts,
		client:      &http.Client{Timeout: cfg.Timeout},
		sleep:       time.Sleep,
		log:         log,
	}
}

// MockMode reports whether the engine never talks to the upstream model.
func (e *Engine) MockMode() bool {
	return e.apiKey == "" || e.apiKey == shared.MockSentinel
}

// Infer runs at most maxAttempts upstream calls and always resolves to one
// outcome. maxAttempts < 1 means the configured default. Transient failures
// (503, transport errors) are retried and finally degrade to a mock verdict;
// every other upstream failure returns an error without retrying.
func (e *Engine) Infer(ctx context.Context, req *Request, maxAttempts int) (*Outcome, error) {
	if maxAttempts < 1 {
		maxAttempts = e.maxAttempts
	}

	if e.MockMode() {
		return e.mockOutcome(req.Category, ReasonNoKey, 0), nil
	}

	start := time.Now()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, err := e.generate(ctx, req)
		if err != nil {
			if attempt < maxAttempts {
				e.log.Warnw("Model request failed, retrying", "attempt", attempt, "error", err.Error())
				e.sleep(shared.TransportRetryDelay)
				continue
			}
			e.log.Warnw("Model unreachable, falling back to mock verdict", "attempts", attempt, "error", err.Error())
			return e.mockOutcome(req.Category, ReasonNetworkError, attempt), nil
		}

		if res.status == http.StatusServiceUnavailable {
			if attempt < maxAttempts {
				e.log.Warnw("Model overloaded, backing off", "attempt", attempt)
				e.sleep(time.Duration(attempt) * shared.OverloadBackoffStep)
				continue
			}
			e.log.Warnw("Model overloaded on every attempt, falling back to mock verdict", "attempts", attempt)
			return e.mockOutcome(req.Category, ReasonOverloaded, attempt), nil
		}

		if res.status != http.StatusOK {
			return nil, &shared.RequestError{
				StatusCode: res.status,
				Err:        fmt.Errorf("model rejected request: %s", res.errMessage),
			}
		}

		raw := extractJSONObject(res.text)
		if raw == "" {
			return nil, &ParseError{Raw: res.text}
		}
		verdict, perr := parseVerdict(raw)
		if perr != nil {
			return nil, &ParseError{Raw: res.text}
		}

		metrics.InferenceDuration.WithLabelValues(string(req.Category)).Observe(time.Since(start).Seconds())
		metrics.InferenceAttempts.WithLabelValues(string(req.Category)).Observe(float64(attempt))
		return &Outcome{Verdict: verdict, Mode: ModeAI, Attempts: attempt}, nil
	}

	// Unreachable: the loop always returns on its last attempt.
	return nil, shared.ErrInternalServerError
}

func (e *Engine) mockOutcome(cat Category, reason MockReason, attempts int) *Outcome {
	metrics.MockFallbacks.WithLabelValues(string(cat), string(reason)).Inc()
	return &Outcome{
		Verdict:    mockVerdict(cat),
		Mode:       ModeMock,
		MockReason: reason,
		Attempts:   attempts,
	}
}
