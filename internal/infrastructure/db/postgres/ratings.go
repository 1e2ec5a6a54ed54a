package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type RatingRepo struct {
	db *sql.DB
}

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

func (r *RatingRepo) Create(ctx context.Context, rt *domain.Rating) error {
	_, err := r.db.ExecContext(ctx, insertRatingSQL,
		rt.ID, rt.ExchangeID, rt.RatedUserID, rt.RaterUserID, rt.Rating, rt.Comment, rt.CreatedAt,
	)
	return mapWriteErr(err, "rating")
}

func (r *RatingRepo) GetByID(ctx context.Context, id string) (*domain.Rating, error) {
	rt, err := scanRating(r.db.QueryRowContext(ctx, getRatingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("rating not found")
	}
	return rt, err
}

func (r *RatingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteRatingSQL, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "rating not found")
}

func (r *RatingRepo) ListByRated(ctx context.Context, userID string) ([]domain.Rating, error) {
	rows, err := r.db.QueryContext(ctx, listRatingsByRatedSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Rating{}
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	return out, rows.Err()
}

func scanRating(row rowScanner) (*domain.Rating, error) {
	var rt domain.Rating
	if err := row.Scan(
		&rt.ID, &rt.ExchangeID, &rt.RatedUserID, &rt.RaterUserID, &rt.Rating, &rt.Comment, &rt.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rt, nil
}
