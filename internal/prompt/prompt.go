// Package prompt assembles the text sent to the model. Pure formatting: all
// signal collection happens before these builders run. Each builder pins the
// verdict shape it asks the model for, and tags the request with the
// matching category so the engine's fallback path can produce the same
// shape without re-reading the prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/OliverHarrison7/TrueorScam/internal/engine"
	"github.com/OliverHarrison7/TrueorScam/internal/signals"

	"github.com/microcosm-cc/bluemonday"
)

// Page snippets go through a strict sanitizer before being embedded, so
// page-controlled markup cannot smuggle instructions into the prompt.
var snippetPolicy = bluemonday.StrictPolicy()

type LinkContext struct {
	URL          string
	UserContext  string
	Shape        signals.URLSignals
	Page         signals.PageInfo
	HTMLFlags    []string
	SafeBrowsing signals.SafeBrowsingResult
	DomainAge    int
	DomainSince  string
}

func Link(lc LinkContext) *engine.Request {
	var b strings.Builder
	b.WriteString("You are a scam-detection assistant. Assess the risk of the link below using the collected signals.\n\n")
	fmt.Fprintf(&b, "URL: %s\n", lc.URL)
	if lc.UserContext != "" {
		fmt.Fprintf(&b, "User context: %s\n", lc.UserContext)
	}

	b.WriteString("\nCollected signals:\n")
	fmt.Fprintf(&b, "- URL shape: host=%s tld=%s path_length=%d at_symbol=%t ip_host=%t many_hyphens=%t suspicious_tld=%t\n",
		lc.Shape.Host, lc.Shape.TLD, lc.Shape.PathLength, lc.Shape.HasAtSymbol, lc.Shape.HasIPHost, lc.Shape.ManyHyphens, lc.Shape.SuspiciousTLD)
	fmt.Fprintf(&b, "- Safe Browsing flagged: %t (%s)\n", lc.SafeBrowsing.Flagged, lc.SafeBrowsing.Raw)
	if lc.DomainAge > 0 {
		fmt.Fprintf(&b, "- Domain registered: %s (%d days ago)\n", lc.DomainSince, lc.DomainAge)
	} else {
		b.WriteString("- Domain registration date unknown\n")
	}

	if lc.Page.Error != "" {
		fmt.Fprintf(&b, "- Page fetch failed: %s\n", lc.Page.Error)
	} else {
		fmt.Fprintf(&b, "- Page: status=%d content_type=%q final_url=%s\n", lc.Page.Status, lc.Page.ContentType, lc.Page.FinalURL)
		if lc.Page.Title != "" {
			fmt.Fprintf(&b, "- Page title: %q\n", lc.Page.Title)
		}
		if lc.Page.FaviconHash != "" {
			fmt.Fprintf(&b, "- Favicon hash: %s\n", lc.Page.FaviconHash)
		}
	}
	for _, f := range lc.HTMLFlags {
		fmt.Fprintf(&b, "- HTML red flag: %s\n", f)
	}
	if snippet := strings.TrimSpace(snippetPolicy.Sanitize(lc.Page.Snippet)); snippet != "" {
		fmt.Fprintf(&b, "\nVisible page text (truncated):\n%s\n", snippet)
	}

	b.WriteString("\nRespond ONLY with a JSON object shaped exactly like: ")
	b.WriteString(`{"risk":"safe|suspicious|likely_scam","signals":["..."],"advice":"..."}`)

	return &engine.Request{
		Category: engine.CategoryLink,
		Parts:    []engine.Part{{Text: b.String()}},
	}
}

func Video(rawURL, userContext string, shape signals.URLSignals) *engine.Request {
	var b strings.Builder
	b.WriteString("You are a scam-detection assistant. Assess the risk that this hosted video is part of a scam (fake giveaways, impersonation streams, investment bait).\n\n")
	fmt.Fprintf(&b, "Video URL: %s (host %s)\n", rawURL, shape.Host)
	if userContext != "" {
		fmt.Fprintf(&b, "User context: %s\n", userContext)
	}
	b.WriteString("\nRespond ONLY with a JSON object shaped exactly like: ")
	b.WriteString(`{"risk":"safe|suspicious|likely_scam","signals":["..."],"advice":"..."}`)

	return &engine.Request{
		Category: engine.CategoryVideo,
		Parts:    []engine.Part{{Text: b.String()}},
	}
}

func Image(userContext string, info signals.EXIFInfo, data []byte, mimeType string) *engine.Request {
	var b strings.Builder
	b.WriteString("You are an image-authenticity assistant. Judge whether the attached image looks authentic, edited, or generated.\n\n")
	if userContext != "" {
		fmt.Fprintf(&b, "User context: %s\n", userContext)
	}
	if info.HasEXIF && info.Meta != nil {
		fmt.Fprintf(&b, "EXIF: make=%q model=%q software=%q created=%q modified=%q lens=%q orientation=%d\n",
			info.Meta.Make, info.Meta.Model, info.Meta.Software, info.Meta.CreateDate, info.Meta.ModifyDate, info.Meta.LensModel, info.Meta.Orientation)
	} else {
		b.WriteString("EXIF: none found (stripped metadata is common for screenshots, edits and AI output)\n")
	}
	b.WriteString("\nRespond ONLY with a JSON object shaped exactly like: ")
	b.WriteString(`{"verdict":"authentic|edited|uncertain","indicators":["..."],"advice":"..."}`)

	parts := []engine.Part{{Text: b.String()}}
	if len(data) > 0 {
		parts = append(parts, engine.Part{MimeType: mimeType, Data: data})
	}
	return &engine.Request{
		Category: engine.CategoryImage,
		Parts:    parts,
	}
}

func Claim(input, userContext string) *engine.Request {
	var b strings.Builder
	b.WriteString("You are a fact-checking assistant. Verify this claim or headline:\n\n")
	fmt.Fprintf(&b, "Claim: %s\n", input)
	if userContext != "" {
		fmt.Fprintf(&b, "Context from the user: %s\n", userContext)
	}
	b.WriteString("\nLay out the verification steps a careful reader should take, and what evidence they should collect.\n")
	b.WriteString("Respond ONLY with a JSON object shaped exactly like: ")
	b.WriteString(`{"verdict":"unverified|likely_true|likely_false|misleading","checks":[{"step":"...","why":"..."}],"what_to_collect":["..."],"advice":"..."}`)

	return &engine.Request{
		Category: engine.CategoryClaim,
		Parts:    []engine.Part{{Text: b.String()}},
	}
}
