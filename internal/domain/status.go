package domain

type ListingStatus string

const (
	StatusActive    ListingStatus = "active"
	StatusPending   ListingStatus = "pending"
	StatusCompleted ListingStatus = "completed"
	StatusCancelled ListingStatus = "cancelled"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
