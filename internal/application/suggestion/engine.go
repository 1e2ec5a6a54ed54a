package suggestion

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

const (
	// MaxSuggestions caps a generated list.
	MaxSuggestions = 10

	perCategoryLimit  = 3
	recentSearchLimit = 3
	perSearchLimit    = 2
	perFavoriteLimit  = 2
)

// Fixed per-pass scores.
const (
	ScoreObjectMatch        = 0.8
	ScoreSimilarToFavorite  = 0.75
	ScoreCategoryPreference = 0.7
	ScoreSearchBased        = 0.6
)

// Display labels, one per suggestion type.
const (
	LabelObjectMatch        = "Potential exchange"
	LabelCategoryPreference = "Recommendation"
	LabelSearchBased        = "Recent search"
	LabelSimilarToFavorite  = "Similar to favorites"
)

// Priority is the merge order: when several passes propose the same listing, the
// suggestion from the pass listed first is kept. It is applied before the score sort.
var Priority = []domain.SuggestionType{
	domain.SuggestionObjectMatch,
	domain.SuggestionCategoryPreference,
	domain.SuggestionSearchBased,
	domain.SuggestionSimilarToFavorite,
}

// Engine is a pure function of its input: the same input yields the same list.
type Engine struct{}

type pass func(in domain.SuggestionInput, skip exclusions) []domain.Suggestion

var passes = map[domain.SuggestionType]pass{
	domain.SuggestionObjectMatch:        objectMatches,
	domain.SuggestionCategoryPreference: categoryPreferences,
	domain.SuggestionSearchBased:        searchBased,
	domain.SuggestionSimilarToFavorite:  similarToFavorites,
}

// Generate runs every pass, keeps the first suggestion per listing in Priority
// order, sorts by score descending (stable) and truncates to MaxSuggestions.
func (Engine) Generate(in domain.SuggestionInput) []domain.Suggestion {
	skip := newExclusions(in)

	var all []domain.Suggestion
	for _, t := range Priority {
		all = append(all, passes[t](in, skip)...)
	}

	seen := make(map[string]bool, len(all))
	out := make([]domain.Suggestion, 0, len(all))
	for _, s := range all {
		if seen[s.SuggestedItem.ID] {
			continue
		}
		seen[s.SuggestedItem.ID] = true
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// exclusions are the user's own and favorited listing ids; no pass may suggest them.
type exclusions map[string]bool

func newExclusions(in domain.SuggestionInput) exclusions {
	ex := make(exclusions, len(in.Own)+len(in.Favorites))
	for _, l := range in.Own {
		ex[l.ID] = true
	}
	for _, l := range in.Favorites {
		ex[l.ID] = true
	}
	return ex
}

func (ex exclusions) allowed(in domain.SuggestionInput, l domain.Listing) bool {
	return !ex[l.ID] && l.OwnerID != in.UserID
}

func objectMatches(in domain.SuggestionInput, skip exclusions) []domain.Suggestion {
	var out []domain.Suggestion
	for _, own := range in.Own {
		first := firstWord(own.Title)
		for _, c := range in.Catalogue {
			if !skip.allowed(in, c) {
				continue
			}
			sameCategory := c.Category == own.Category
			similarTitle := first != "" && strings.Contains(strings.ToLower(c.Title), first)
			if !sameCategory && !similarTitle {
				continue
			}
			userItem := own.Clone()
			out = append(out, domain.Suggestion{
				ID:            fmt.Sprintf("match_%s_%s", own.ID, c.ID),
				Type:          domain.SuggestionObjectMatch,
				SuggestedItem: c.Clone(),
				UserItem:      &userItem,
				Reason:        fmt.Sprintf("You have a %s, this trader offers something similar", own.Title),
				Score:         ScoreObjectMatch,
				Category:      LabelObjectMatch,
			})
		}
	}
	return out
}

func categoryPreferences(in domain.SuggestionInput, skip exclusions) []domain.Suggestion {
	var out []domain.Suggestion
	for _, cat := range in.Preferences.Categories {
		n := 0
		for _, c := range in.Catalogue {
			if n == perCategoryLimit {
				break
			}
			if c.Category != cat || !skip.allowed(in, c) {
				continue
			}
			n++
			out = append(out, domain.Suggestion{
				ID:            fmt.Sprintf("category_%s", c.ID),
				Type:          domain.SuggestionCategoryPreference,
				SuggestedItem: c.Clone(),
				Reason:        fmt.Sprintf("Based on your interest in %s", cat),
				Score:         ScoreCategoryPreference,
				Category:      LabelCategoryPreference,
			})
		}
	}
	return out
}

func searchBased(in domain.SuggestionInput, skip exclusions) []domain.Suggestion {
	var out []domain.Suggestion
	history := in.History
	if len(history) > recentSearchLimit {
		history = history[:recentSearchLimit]
	}
	for _, q := range history {
		lq := strings.ToLower(q)
		if strings.TrimSpace(lq) == "" {
			continue
		}
		n := 0
		for _, c := range in.Catalogue {
			if n == perSearchLimit {
				break
			}
			if !skip.allowed(in, c) {
				continue
			}
			if !strings.Contains(strings.ToLower(c.Title), lq) && !strings.Contains(strings.ToLower(c.Description), lq) {
				continue
			}
			n++
			out = append(out, domain.Suggestion{
				ID:            fmt.Sprintf("search_%s_%s", queryDigest(q), c.ID),
				Type:          domain.SuggestionSearchBased,
				SuggestedItem: c.Clone(),
				Reason:        fmt.Sprintf("Based on your recent search: %q", q),
				Score:         ScoreSearchBased,
				Category:      LabelSearchBased,
			})
		}
	}
	return out
}

// queryDigest keeps raw query text out of suggestion ids, which travel as path segments.
func queryDigest(q string) string {
	sum := sha1.Sum([]byte(q))
	return hex.EncodeToString(sum[:])[:12]
}

func similarToFavorites(in domain.SuggestionInput, skip exclusions) []domain.Suggestion {
	var out []domain.Suggestion
	for _, fav := range in.Favorites {
		n := 0
		for _, c := range in.Catalogue {
			if n == perFavoriteLimit {
				break
			}
			if c.ID == fav.ID || c.Category != fav.Category || !skip.allowed(in, c) {
				continue
			}
			n++
			out = append(out, domain.Suggestion{
				ID:            fmt.Sprintf("similar_%s_%s", fav.ID, c.ID),
				Type:          domain.SuggestionSimilarToFavorite,
				SuggestedItem: c.Clone(),
				Reason:        fmt.Sprintf("Similar to your favorite: %s", fav.Title),
				Score:         ScoreSimilarToFavorite,
				Category:      LabelSimilarToFavorite,
			})
		}
	}
	return out
}

func firstWord(title string) string {
	f := strings.Fields(strings.ToLower(title))
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
