package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/lib/pq"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ListingRepo struct {
	db *sql.DB
}

func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	_, err := r.db.ExecContext(ctx, insertListingSQL,
		l.ID, l.OwnerID, l.Title, l.Description, l.Category, l.Location,
		string(l.Status), l.Views, pq.Array(nonNil(l.Interested)), l.CreatedAt, l.UpdatedAt,
	)
	return mapWriteErr(err, "listing")
}

func (r *ListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx, getListingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("listing not found")
	}
	return l, err
}

func (r *ListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	res, err := r.db.ExecContext(ctx, updateListingSQL,
		l.ID,
		l.Title, l.Description, l.Category, l.Location,
		string(l.Status), l.Views, pq.Array(nonNil(l.Interested)), l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, "listing not found")
}

func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteListingSQL, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "listing not found")
}

// RegisterInterest appends in a single statement so concurrent interest is never lost.
func (r *ListingRepo) RegisterInterest(ctx context.Context, id, userID string, now time.Time) (*domain.Listing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx, registerInterestSQL, id, userID, now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("listing not found")
	}
	return l, err
}

func (r *ListingRepo) Search(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	q := psql.Select(listingColumns).From("listings")
	if f.Query != "" {
		pat := "%" + likeEscaper.Replace(f.Query) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"title": pat},
			squirrel.ILike{"description": pat},
			squirrel.ILike{"category": pat},
		})
	}
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"category": f.Category})
	}
	if f.Location != "" {
		q = q.Where(squirrel.Eq{"location": f.Location})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": string(f.Status)})
	}
	q = q.OrderBy("created_at ASC", "id ASC")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, query, args...)
}

func (r *ListingRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	return r.list(ctx, listListingsByOwnerSQL, ownerID)
}

func (r *ListingRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countActiveByOwnerSQL, ownerID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ListingRepo) list(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var l domain.Listing
	var status string
	var interested pq.StringArray
	if err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Location,
		&status, &l.Views, &interested, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	l.Status = domain.ListingStatus(status)
	if !l.Status.Valid() {
		return nil, domain.ErrInvalidState("invalid status in db")
	}
	l.Interested = nonNil([]string(interested))
	return &l, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
