package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/OliverHarrison7/TrueorScam/internal/engine"
	"github.com/OliverHarrison7/TrueorScam/internal/prompt"
	"github.com/OliverHarrison7/TrueorScam/internal/setup"
	"github.com/OliverHarrison7/TrueorScam/internal/signals"

	"golang.org/x/sync/errgroup"
)

// LinkSignals is the collector output echoed back to the client alongside
// the verdict.
type LinkSignals struct {
	URLShape      signals.URLSignals         `json:"url_shape"`
	SafeBrowsing  signals.SafeBrowsingResult `json:"safe_browsing"`
	Page          signals.PageInfo           `json:"page"`
	HTMLFlags     []string                   `json:"html_flags,omitempty"`
	DomainAgeDays int                        `json:"domain_age_days,omitempty"`
}

// buildLinkRequest fans the slow collectors out in parallel; the URL shape
// heuristic is pure and runs inline. Collector failures are benign values,
// so the group never aborts early.
func (dm *DetectManager) buildLinkRequest(c *setup.Context, input, userContext string) (*engine.Request, any) {
	shape := signals.URLShape(input)

	var (
		page  signals.PageInfo
		sb    signals.SafeBrowsingResult
		age   int
		since string
	)

	g, gctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		page = dm.Inspector.Inspect(gctx, input)
		return nil
	})
	g.Go(func() error {
		sb = dm.SafeBrowsing.Check(gctx, input)
		return nil
	})
	g.Go(func() error {
		age, since = dm.domainAge(signals.RootDomain(shape.Host))
		return nil
	})
	_ = g.Wait()

	flags := signals.ScanHTML(page.Snippet)

	collected := LinkSignals{
		URLShape:      shape,
		SafeBrowsing:  sb,
		Page:          page,
		HTMLFlags:     flags,
		DomainAgeDays: age,
	}
	req := prompt.Link(prompt.LinkContext{
		URL:          input,
		UserContext:  userContext,
		Shape:        shape,
		Page:         page,
		HTMLFlags:    flags,
		SafeBrowsing: sb,
		DomainAge:    age,
		DomainSince:  since,
	})
	return req, collected
}

// buildImageURLRequest fetches the remote image and inlines it; when the
// fetch fails the model still gets the URL and metadata-free context.
func (dm *DetectManager) buildImageURLRequest(c *setup.Context, input, userContext string) (*engine.Request, any) {
	imageContext := fmt.Sprintf("Image URL: %s", input)
	if userContext != "" {
		imageContext = fmt.Sprintf("%s. %s", imageContext, userContext)
	}

	data, mimeType, err := dm.Inspector.FetchImage(c.Request().Context(), input)
	if err != nil {
		c.Log.Warnw("Failed to fetch remote image", "error", err.Error())
		return prompt.Image(imageContext+". The image itself could not be fetched.", signals.EXIFInfo{}, nil, ""), nil
	}

	exifInfo := signals.ExtractEXIF(data)
	return prompt.Image(imageContext, exifInfo, data, mimeType), exifInfo
}

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
