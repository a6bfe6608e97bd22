package signals

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Red-flag patterns matched against raw page HTML. Each hit becomes one
// human-readable signal string in the prompt.
var htmlFlagPatterns = []struct {
	re   *regexp.Regexp
	desc string
}{
	{regexp.MustCompile(`(?i)\son(click|load|error|mouseover)\s*=`), "inline script handlers on page elements"},
	{regexp.MustCompile(`(?i)(seed\s*phrase|recovery\s*phrase|wallet\s*address|connect\s+(your\s+)?wallet|private\s*key)`), "crypto-wallet bait language"},
	{regexp.MustCompile(`(?i)(free\s+(giveaway|crypto|bitcoin|iphone)|you\s+(have\s+)?won|claim\s+your\s+(prize|reward))`), "giveaway bait language"},
	{regexp.MustCompile(`(?i)filter\s*:\s*blur\(`), "CSS-blur obfuscation"},
}

var (
	loginRe  = regexp.MustCompile(`(?i)(log\s*in|sign\s*in|password)`)
	verifyRe = regexp.MustCompile(`(?i)(verify|confirm)\s+(your\s+)?(account|identity|details)`)
)

// ScanHTML is a pure function over the fetched page body.
func ScanHTML(body string) []string {
	var flags []string
	for _, p := range htmlFlagPatterns {
		if p.re.MatchString(body) {
			flags = append(flags, p.desc)
		}
	}
	// Login forms that also push "verify your account" are the classic
	// credential-phishing combination; neither alone is a flag.
	if loginRe.MatchString(body) && verifyRe.MatchString(body) {
		flags = append(flags, "login form combined with account-verification language")
	}
	return flags
}

// PageTitle pulls the <title> text out of an HTML snippet, best effort.
func PageTitle(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
