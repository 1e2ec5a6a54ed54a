package domain

import "strings"

// SearchHistoryLimit caps the per-user search history.
const SearchHistoryLimit = 10

// PushSearchQuery returns history with q moved (or inserted) at the front,
// without duplicates and capped at SearchHistoryLimit. Blank queries leave history unchanged.
func PushSearchQuery(history []string, q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return history
	}
	out := make([]string, 0, SearchHistoryLimit)
	out = append(out, q)
	for _, h := range history {
		if len(out) == SearchHistoryLimit {
			break
		}
		if h == q {
			continue
		}
		out = append(out, h)
	}
	return out
}
