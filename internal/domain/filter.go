package domain

import "strings"

// ListingFilter is the search query plus exact-match filters.
// Empty fields do not constrain the result.
type ListingFilter struct {
	Query    string
	Category string
	Location string
	Status   ListingStatus
}

func (f *ListingFilter) Normalize() error {
	f.Query = strings.TrimSpace(f.Query)
	f.Category = strings.TrimSpace(f.Category)
	f.Location = strings.TrimSpace(f.Location)
	if f.Status != "" && !f.Status.Valid() {
		return ErrValidationMeta("invalid query param", map[string]string{
			"status": "must be one of: active, pending, completed, cancelled",
		})
	}
	return nil
}

// Matches applies the filter to a single listing: case-insensitive substring match of
// Query against title, description or category, AND'd with the exact filters.
func (f ListingFilter) Matches(l Listing) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !containsFold(l.Title, q) && !containsFold(l.Description, q) && !containsFold(l.Category, q) {
			return false
		}
	}
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.Location != "" && l.Location != f.Location {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	return true
}

// containsFold reports whether s contains the already lower-cased needle.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
