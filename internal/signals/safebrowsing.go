package signals

import (
	"context"
	"fmt"

	"github.com/OliverHarrison7/TrueorScam/internal/metrics"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	safebrowsing "google.golang.org/api/safebrowsing/v4"
)

type SafeBrowsingResult struct {
	Flagged bool   `json:"flagged"`
	Raw     string `json:"raw,omitempty"`
}

type SafeBrowsing struct {
	service *safebrowsing.Service
	log     *zap.SugaredLogger
}

// NewSafeBrowsing returns a nil-service collector when no key is configured;
// Check then reports not-flagged with a diagnostic.
func NewSafeBrowsing(ctx context.Context, apiKey string, log *zap.SugaredLogger) (*SafeBrowsing, error) {
	sb := &SafeBrowsing{log: log}
	if apiKey == "" {
		return sb, nil
	}
	service, err := safebrowsing.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to safe browsing service: %s", err)
	}
	sb.service = service
	return sb, nil
}

// Check never returns an error: upstream failures or a missing key yield
// Flagged:false with the cause in Raw.
func (sb *SafeBrowsing) Check(ctx context.Context, url string) SafeBrowsingResult {
	if sb.service == nil {
		return SafeBrowsingResult{Flagged: false, Raw: "safe browsing key not configured"}
	}

	req := &safebrowsing.GoogleSecuritySafebrowsingV4FindThreatMatchesRequest{
		Client: &safebrowsing.GoogleSecuritySafebrowsingV4ClientInfo{
			ClientId:      "trueorscam",
			ClientVersion: "1.0",
		},
		ThreatInfo: &safebrowsing.GoogleSecuritySafebrowsingV4ThreatInfo{
			ThreatTypes:      []string{"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE"},
			PlatformTypes:    []string{"ANY_PLATFORM"},
			ThreatEntryTypes: []string{"URL"},
			ThreatEntries: []*safebrowsing.GoogleSecuritySafebrowsingV4ThreatEntry{
				{Url: url},
			},
		},
	}

	res, err := sb.service.ThreatMatches.Find(req).Context(ctx).Do()
	if err != nil {
		sb.log.Warnw("Safe browsing lookup failed", "error", err.Error())
		metrics.SignalErrors.WithLabelValues("safebrowsing").Inc()
		return SafeBrowsingResult{Flagged: false, Raw: err.Error()}
	}

	if len(res.Matches) == 0 {
		return SafeBrowsingResult{Flagged: false, Raw: "no threats"}
	}
	return SafeBrowsingResult{
		Flagged: true,
		Raw:     fmt.Sprintf("flagged as %s", res.Matches[0].ThreatType),
	}
}
