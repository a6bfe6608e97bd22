package engine

// mockVerdict synthesizes a deterministic verdict matching the shape the
// caller asked for. Pure and local: no network, no randomness. The advice
// strings steer users toward manual checks since no model judgment exists.
func mockVerdict(cat Category) map[string]any {
	switch cat {
	case CategoryClaim:
		return map[string]any{
			"verdict": "unverified",
			"checks": []any{
				map[string]any{
					"step": "Search the exact claim wording",
					"why":  "Fabricated claims are usually debunked on fact-checking sites within days",
				},
				map[string]any{
					"step": "Find the original source",
					"why":  "Claims detached from their source are often altered in transit",
				},
			},
			"what_to_collect": []any{
				"A link to where the claim was published",
				"The date the claim first appeared",
			},
			"advice": "Automated verification is unavailable right now; treat the claim as unverified until you can check a primary source.",
		}
	case CategoryImage:
		return map[string]any{
			"verdict": "uncertain",
			"indicators": []any{
				"Model analysis unavailable; only local metadata checks ran",
			},
			"advice": "Run a reverse image search and compare against the earliest published copy before trusting this image.",
		}
	case CategoryVideo:
		return map[string]any{
			"risk": "suspicious",
			"signals": []any{
				"Model analysis unavailable; verdict based on heuristics only",
			},
			"advice": "Check the channel's age and upload history before acting on this video.",
		}
	default: // CategoryLink
		return map[string]any{
			"risk": "suspicious",
			"signals": []any{
				"Model analysis unavailable; verdict based on heuristics only",
			},
			"advice": "Do not enter credentials or payment details on this site until it can be verified.",
		}
	}
}
