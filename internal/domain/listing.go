package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Listing is an item a user offers for barter.
type Listing struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`

	Status     ListingStatus `json:"status"`
	Views      int           `json:"views"`
	Interested []string      `json:"interested"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewListing(ownerID, title, description, category, location string, now time.Time) (*Listing, error) {
	ownerID = strings.TrimSpace(ownerID)
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)
	location = strings.TrimSpace(location)

	if ownerID == "" {
		return nil, ErrValidation("owner_id is required")
	}
	if title == "" || len(title) > 120 {
		return nil, ErrValidation("title is required and must be <= 120 chars")
	}
	if len(description) > 4000 {
		return nil, ErrValidation("description must be <= 4000 chars")
	}
	if category == "" || len(category) > 80 {
		return nil, ErrValidation("category is required and must be <= 80 chars")
	}
	if len(location) > 120 {
		return nil, ErrValidation("location must be <= 120 chars")
	}

	return &Listing{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		Location:    location,
		Status:      StatusActive,
		Views:       0,
		Interested:  []string{},
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

// ListingPatch carries the fields of a partial update; nil means unchanged.
type ListingPatch struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	Status      *ListingStatus
}

func (p ListingPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Location == nil && p.Status == nil
}

func (l *Listing) ApplyPatch(p ListingPatch, now time.Time) error {
	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		if v == "" || len(v) > 120 {
			return ErrValidation("title must be non-empty and <= 120 chars")
		}
		l.Title = v
	}
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		if len(v) > 4000 {
			return ErrValidation("description must be <= 4000 chars")
		}
		l.Description = v
	}
	if p.Category != nil {
		v := strings.TrimSpace(*p.Category)
		if v == "" || len(v) > 80 {
			return ErrValidation("category must be non-empty and <= 80 chars")
		}
		l.Category = v
	}
	if p.Location != nil {
		v := strings.TrimSpace(*p.Location)
		if len(v) > 120 {
			return ErrValidation("location must be <= 120 chars")
		}
		l.Location = v
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return ErrValidationMeta("invalid status", map[string]string{
				"status": "must be one of: active, pending, completed, cancelled",
			})
		}
		l.Status = *p.Status
	}
	l.UpdatedAt = now.UTC()
	return nil
}

// RegisterInterest records userID as interested and counts a view.
// Repeat interest from the same user is kept.
func (l *Listing) RegisterInterest(userID string, now time.Time) {
	l.Interested = append(l.Interested, userID)
	l.Views++
	l.UpdatedAt = now.UTC()
}

// Clone returns a deep copy so stored values are never shared with callers.
func (l Listing) Clone() Listing {
	out := l
	out.Interested = append([]string(nil), l.Interested...)
	if out.Interested == nil {
		out.Interested = []string{}
	}
	return out
}
