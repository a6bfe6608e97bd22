// Package signals implements the low-cost collectors whose findings are
// embedded into the model prompt. Every collector returns a small struct or
// a benign failure value; none of them retries or blocks past its timeout.
package signals

import (
	"net"
	"net/url"
	"strings"
)

// URLSignals are pure shape heuristics over the raw URL, no I/O.
type URLSignals struct {
	Scheme        string `json:"scheme"`
	Host          string `json:"host"`
	TLD           string `json:"tld"`
	PathLength    int    `json:"path_length"`
	HasAtSymbol   bool   `json:"has_at_symbol"`
	HasIPHost     bool   `json:"has_ip_host"`
	ManyHyphens   bool   `json:"many_hyphens"`
	SuspiciousTLD bool   `json:"suspicious_tld"`
}

// TLDs disproportionately represented in phishing feeds.
var suspiciousTLDs = map[string]bool{
	"zip": true, "mov": true, "xyz": true, "top": true, "gq": true,
	"tk": true, "ml": true, "cf": true, "ga": true, "icu": true,
	"cam": true, "rest": true, "click": true, "link": true,
}

func URLShape(raw string) URLSignals {
	var s URLSignals
	u, err := url.Parse(raw)
	if err != nil {
		return s
	}

	s.Scheme = u.Scheme
	s.Host = u.Hostname()
	s.PathLength = len(u.Path)
	s.HasAtSymbol = strings.Contains(raw, "@")
	s.HasIPHost = net.ParseIP(s.Host) != nil
	s.ManyHyphens = strings.Count(s.Host, "-") >= 3

	if !s.HasIPHost {
		if idx := strings.LastIndex(s.Host, "."); idx != -1 {
			s.TLD = s.Host[idx+1:]
			s.SuspiciousTLD = suspiciousTLDs[s.TLD]
		}
	}
	return s
}

// RootDomain strips subdomains so whois lookups hit the registrable name.
func RootDomain(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}
