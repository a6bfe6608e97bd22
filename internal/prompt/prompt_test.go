package prompt

import (
	"strings"
	"testing"

	"github.com/OliverHarrison7/TrueorScam/internal/engine"
	"github.com/OliverHarrison7/TrueorScam/internal/signals"
)

func TestClaimPrompt(t *testing.T) {
	req := Claim("NASA confirmed the moon is shrinking", "saw it on social media")

	if req.Category != engine.CategoryClaim {
		t.Fatalf("expected claim category, got %s", req.Category)
	}
	if len(req.Parts) != 1 {
		t.Fatalf("expected a single text part, got %d", len(req.Parts))
	}
	text := req.Parts[0].Text
	if !strings.Contains(text, "Verify this claim") {
		t.Fatal("claim prompt must carry the verification instruction")
	}
	if !strings.Contains(text, "NASA confirmed the moon is shrinking") {
		t.Fatal("claim prompt must embed the claim")
	}
	if !strings.Contains(text, "what_to_collect") {
		t.Fatal("claim prompt must pin the expected verdict shape")
	}
}

func TestLinkPromptEmbedsSignals(t *testing.T) {
	req := Link(LinkContext{
		URL:   "https://secure-login.example.top/verify",
		Shape: signals.URLSignals{Host: "secure-login.example.top", TLD: "top", SuspiciousTLD: true},
		Page: signals.PageInfo{
			FinalURL:    "https://secure-login.example.top/verify",
			Status:      200,
			ContentType: "text/html",
			Snippet:     `<p>Please <b>verify your account</b> now</p>`,
		},
		HTMLFlags:    []string{"login form combined with account-verification language"},
		SafeBrowsing: signals.SafeBrowsingResult{Flagged: true, Raw: "flagged as SOCIAL_ENGINEERING"},
		DomainAge:    12,
		DomainSince:  "2026-08-18",
	})

	if req.Category != engine.CategoryLink {
		t.Fatalf("expected link category, got %s", req.Category)
	}
	text := req.Parts[0].Text
	for _, want := range []string{
		"suspicious_tld=true",
		"Safe Browsing flagged: true",
		"12 days ago",
		"login form combined",
		`"risk":"safe|suspicious|likely_scam"`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("link prompt missing %q:\n%s", want, text)
		}
	}
}

func TestLinkPromptSanitizesSnippetMarkup(t *testing.T) {
	req := Link(LinkContext{
		URL: "https://example.com",
		Page: signals.PageInfo{
			Snippet: `<script>alert(1)</script><p>visible text</p>`,
		},
	})

	text := req.Parts[0].Text
	if strings.Contains(text, "<script>") || strings.Contains(text, "<p>") {
		t.Fatal("page markup must not survive into the prompt")
	}
	if !strings.Contains(text, "visible text") {
		t.Fatal("visible page text should survive sanitizing")
	}
}

func TestImagePromptAttachesInlineData(t *testing.T) {
	data := []byte{0xff, 0xd8, 0xff}
	req := Image("found in a listing", signals.EXIFInfo{
		HasEXIF: true,
		Meta:    &signals.EXIFMeta{Make: "Canon", Software: "Adobe Photoshop"},
	}, data, "image/jpeg")

	if req.Category != engine.CategoryImage {
		t.Fatalf("expected image category, got %s", req.Category)
	}
	if len(req.Parts) != 2 {
		t.Fatalf("expected text + inline parts, got %d", len(req.Parts))
	}
	if !strings.Contains(req.Parts[0].Text, "Adobe Photoshop") {
		t.Fatal("image prompt must surface the EXIF software tag")
	}
	if req.Parts[1].MimeType != "image/jpeg" || len(req.Parts[1].Data) != len(data) {
		t.Fatalf("inline part malformed: %+v", req.Parts[1])
	}
}

func TestImagePromptWithoutBytes(t *testing.T) {
	req := Image("", signals.EXIFInfo{}, nil, "")
	if len(req.Parts) != 1 {
		t.Fatalf("expected text-only prompt when no bytes exist, got %d parts", len(req.Parts))
	}
	if !strings.Contains(req.Parts[0].Text, "EXIF: none found") {
		t.Fatal("prompt should state that no metadata was found")
	}
}

func TestVideoPrompt(t *testing.T) {
	req := Video("https://youtube.com/watch?v=abc", "", signals.URLSignals{Host: "youtube.com"})
	if req.Category != engine.CategoryVideo {
		t.Fatalf("expected video category, got %s", req.Category)
	}
	if !strings.Contains(req.Parts[0].Text, "youtube.com") {
		t.Fatal("video prompt must embed the host")
	}
}
