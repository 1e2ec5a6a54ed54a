package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is append-only; averages are derived on read.
type Rating struct {
	ID          string
	ExchangeID  string
	RatedUserID string
	RaterUserID string
	Rating      int
	Comment     string
	CreatedAt   time.Time
}

// ClampRating forces v into [MinRating, MaxRating].
func ClampRating(v int) int {
	return max(MinRating, min(MaxRating, v))
}

func NewRating(exchangeID, ratedUserID, raterUserID string, value int, comment string, now time.Time) (*Rating, error) {
	exchangeID = strings.TrimSpace(exchangeID)
	ratedUserID = strings.TrimSpace(ratedUserID)
	raterUserID = strings.TrimSpace(raterUserID)
	comment = strings.TrimSpace(comment)

	if exchangeID == "" {
		return nil, ErrValidation("exchange_id is required")
	}
	if ratedUserID == "" {
		return nil, ErrValidation("rated_user_id is required")
	}
	if raterUserID == "" {
		return nil, ErrValidation("rater_user_id is required")
	}
	if ratedUserID == raterUserID {
		return nil, ErrValidation("users cannot rate themselves")
	}
	if len(comment) > 1000 {
		return nil, ErrValidation("comment must be <= 1000 chars")
	}

	return &Rating{
		ID:          uuid.NewString(),
		ExchangeID:  exchangeID,
		RatedUserID: ratedUserID,
		RaterUserID: raterUserID,
		Rating:      ClampRating(value),
		Comment:     comment,
		CreatedAt:   now.UTC(),
	}, nil
}

// AverageRating is the mean rating rounded to one decimal; 0 when there are none.
func AverageRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}
