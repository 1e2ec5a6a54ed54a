package postgres

import (
	"context"
	"database/sql"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
)

type BadgeRepo struct {
	db *sql.DB
}

func NewBadgeRepo(db *sql.DB) *BadgeRepo { return &BadgeRepo{db: db} }

// Replace swaps the user's badge set atomically.
func (r *BadgeRepo) Replace(ctx context.Context, userID string, badges []domain.Badge) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteBadgesSQL, userID); err != nil {
			return err
		}
		for _, b := range badges {
			if _, err := tx.ExecContext(ctx, insertBadgeSQL,
				userID, string(b.Kind), b.Name, b.Description, b.EarnedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BadgeRepo) List(ctx context.Context, userID string) ([]domain.Badge, error) {
	rows, err := r.db.QueryContext(ctx, listBadgesSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Badge{}
	for rows.Next() {
		var b domain.Badge
		var kind string
		if err := rows.Scan(&b.UserID, &kind, &b.Name, &b.Description, &b.EarnedAt); err != nil {
			return nil, err
		}
		b.Kind = domain.BadgeKind(kind)
		out = append(out, b)
	}
	return out, rows.Err()
}
