package domain

import "time"

type SuggestionType string

const (
	SuggestionObjectMatch        SuggestionType = "object_match"
	SuggestionCategoryPreference SuggestionType = "category_preference"
	SuggestionSearchBased        SuggestionType = "search_based"
	SuggestionSimilarToFavorite  SuggestionType = "similar_to_favorite"
)

func (t SuggestionType) Valid() bool {
	switch t {
	case SuggestionObjectMatch, SuggestionCategoryPreference, SuggestionSearchBased, SuggestionSimilarToFavorite:
		return true
	}
	return false
}

// Suggestion points a user at another user's listing and says why.
type Suggestion struct {
	ID            string         `json:"id"`
	Type          SuggestionType `json:"type"`
	SuggestedItem Listing        `json:"suggested_item"`
	UserItem      *Listing       `json:"user_item,omitempty"`
	Reason        string         `json:"reason"`
	Score         float64        `json:"score"`
	Category      string         `json:"category"`
	Viewed        bool           `json:"viewed"`
}

// SuggestionStats summarises a stored suggestion list against a display limit.
type SuggestionStats struct {
	Total    int
	Viewed   int
	Unviewed int
	HasMore  bool
}

func ComputeSuggestionStats(list []Suggestion, displayLimit int) SuggestionStats {
	st := SuggestionStats{Total: len(list)}
	for _, s := range list {
		if !s.Viewed {
			st.Unviewed++
		}
	}
	st.Viewed = st.Total - st.Unviewed
	st.HasMore = st.Unviewed > displayLimit
	return st
}

// SuggestionInput is the per-user snapshot the engine reads. Catalogue holds the
// candidate listings in canonical (creation) order.
type SuggestionInput struct {
	UserID      string
	Catalogue   []Listing
	Own         []Listing
	Favorites   []Listing
	History     []string
	Preferences UserPreferences
}

// SuggestionList is the stored result of one generation.
type SuggestionList struct {
	UserID      string       `json:"user_id"`
	Items       []Suggestion `json:"items"`
	Epoch       int64        `json:"epoch"`
	UserEpoch   int64        `json:"user_epoch"`
	GeneratedAt time.Time    `json:"generated_at"`
}
