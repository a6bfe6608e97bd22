package signals

import (
	"strings"
	"time"

	"github.com/OliverHarrison7/TrueorScam/internal/metrics"

	"github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"
)

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// DomainAge looks up when a domain was registered. Freshly registered
// domains are one of the strongest scam signals available without a model.
// Returns (0, "") when the lookup or parse fails.
func DomainAge(domain string) (int, string) {
	raw, err := whois.Whois(domain)
	if err != nil {
		metrics.SignalErrors.WithLabelValues("whois").Inc()
		return 0, ""
	}

	p, err := parser.Parse(raw)
	if err != nil || p.Domain == nil {
		return 0, ""
	}

	createdStr := strings.TrimSpace(p.Domain.CreatedDate)
	var created time.Time
	for _, l := range whoisDateLayouts {
		if t, err := time.Parse(l, createdStr); err == nil {
			created = t
			break
		}
	}
	if created.IsZero() {
		return 0, ""
	}

	return int(time.Since(created).Hours() / 24), created.Format("2006-01-02")
}
