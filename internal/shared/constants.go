package shared

import "time"

// HTTP Client Configuration
const (
	DefaultRequestTimeout  = 10 * time.Second
	DefaultInspectTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Inference Configuration
const (
	DefaultModel       = "gemini-2.0-flash"
	DefaultMaxAttempts = 3
	MockSentinel       = "mock"

	// Backoff between attempts. Overload waits grow linearly with the
	// 1-indexed attempt number; transport errors wait a fixed delay.
	OverloadBackoffStep = 1 * time.Second
	TransportRetryDelay = 500 * time.Millisecond
)

// Cache Configuration
const (
	VerdictCacheTTL = 15 * time.Minute
)

// Rate Limit Configuration
const (
	RateLimitWindow   = 1 * time.Minute
	RateLimitRequests = 30
)

// Input Configuration
const (
	MaxUploadBytes = 8 << 20
	MaxFetchBytes  = 8 << 20
	MaxSnippetLen  = 5000
)
