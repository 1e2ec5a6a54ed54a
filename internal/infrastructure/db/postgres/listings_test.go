package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listingCols = []string{
	"id", "owner_id", "title", "description", "category", "location",
	"status", "views", "interested", "created_at", "updated_at",
}

func TestListingRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingRepo(db)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	l := &domain.Listing{
		ID: "lst_1", OwnerID: "u1", Title: "Bike", Description: "red", Category: "Sports", Location: "Syd",
		Status: domain.StatusActive, Interested: []string{}, CreatedAt: now, UpdatedAt: now,
	}

	t.Run("insert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO listings").
			WithArgs(l.ID, l.OwnerID, l.Title, l.Description, l.Category, l.Location,
				"active", 0, sqlmock.AnyArg(), now, now).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.Create(context.Background(), l))
	})

	t.Run("unique_violation_maps_to_invalid_state", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO listings").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), l)
		assert.True(t, domain.IsCode(err, domain.CodeInvalidState))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingRepo(db)
	now := time.Now().UTC()

	t.Run("success_mapping", func(t *testing.T) {
		rows := sqlmock.NewRows(listingCols).AddRow(
			"lst_1", "u1", "Bike", "red", "Sports", "Syd",
			"pending", 3, "{u2,u3}", now, now,
		)
		mock.ExpectQuery("SELECT (.+) FROM listings WHERE id =").
			WithArgs("lst_1").
			WillReturnRows(rows)

		l, err := repo.GetByID(context.Background(), "lst_1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, l.Status)
		assert.Equal(t, 3, l.Views)
		assert.Equal(t, []string{"u2", "u3"}, l.Interested)
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs("none").WillReturnError(sql.ErrNoRows)

		l, err := repo.GetByID(context.Background(), "none")
		assert.Nil(t, l)
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})

	t.Run("invalid_status_in_db", func(t *testing.T) {
		rows := sqlmock.NewRows(listingCols).AddRow(
			"lst_2", "u1", "Bike", "", "Sports", "", "weird", 0, "{}", now, now,
		)
		mock.ExpectQuery("SELECT (.+) FROM listings").WithArgs("lst_2").WillReturnRows(rows)

		_, err := repo.GetByID(context.Background(), "lst_2")
		assert.True(t, domain.IsCode(err, domain.CodeInvalidState))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepo_UpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingRepo(db)
	now := time.Now().UTC()
	l := &domain.Listing{ID: "lst_1", Title: "Bike", Category: "Sports", Status: domain.StatusCompleted, UpdatedAt: now}

	mock.ExpectExec("UPDATE listings SET").
		WithArgs("lst_1", "Bike", "", "Sports", "", "completed", 0, sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Update(context.Background(), l))

	mock.ExpectExec("UPDATE listings SET").WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Update(context.Background(), l)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	mock.ExpectExec("DELETE FROM listings WHERE id").WithArgs("lst_1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), "lst_1"))

	mock.ExpectExec("DELETE FROM listings WHERE id").WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Delete(context.Background(), "gone")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepo_RegisterInterest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingRepo(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(listingCols).AddRow(
		"lst_1", "u1", "Bike", "", "Sports", "", "active", 1, "{u2}", now, now,
	)
	mock.ExpectQuery("UPDATE listings SET\\s+interested = array_append").
		WithArgs("lst_1", "u2", now).
		WillReturnRows(rows)

	l, err := repo.RegisterInterest(context.Background(), "lst_1", "u2", now)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Views)
	assert.Equal(t, []string{"u2"}, l.Interested)

	mock.ExpectQuery("UPDATE listings SET").WithArgs("gone", "u2", now).WillReturnError(sql.ErrNoRows)
	_, err = repo.RegisterInterest(context.Background(), "gone", "u2", now)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepo_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingRepo(db)
	now := time.Now().UTC()

	t.Run("query_and_filters", func(t *testing.T) {
		mock.ExpectQuery(`FROM listings WHERE \(title ILIKE \$1 OR description ILIKE \$2 OR category ILIKE \$3\) AND category = \$4 AND status = \$5 ORDER BY created_at ASC, id ASC`).
			WithArgs("%50\\%%", "%50\\%%", "%50\\%%", "Books", "active").
			WillReturnRows(sqlmock.NewRows(listingCols).
				AddRow("a", "u1", "50% off", "", "Books", "", "active", 0, "{}", now, now).
				AddRow("b", "u2", "Half 50%", "", "Books", "", "active", 0, "{}", now, now))

		out, err := repo.Search(context.Background(), domain.ListingFilter{
			Query: "50%", Category: "Books", Status: domain.StatusActive,
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, []string{}, out[1].Interested)
	})

	t.Run("no_filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM listings ORDER BY created_at ASC, id ASC`).
			WillReturnRows(sqlmock.NewRows(listingCols))

		out, err := repo.Search(context.Background(), domain.ListingFilter{})
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.NotNil(t, out)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepo_Owner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewListingRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM listings WHERE owner_id =").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow("a", "u1", "Bike", "", "Sports", "", "active", 0, "{}", now, now))
	out, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, out, 1)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM listings WHERE owner_id = \\$1 AND status = 'active'").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	n, err := repo.CountActiveByOwner(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
