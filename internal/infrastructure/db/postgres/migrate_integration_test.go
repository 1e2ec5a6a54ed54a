package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMigrateAndRepos_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pg, err := tcpostgres.Run(ctx, "postgres:17",
		tcpostgres.WithDatabase("barter"),
		tcpostgres.WithUsername("barter"),
		tcpostgres.WithPassword("barter"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	// second run is a no-op
	require.NoError(t, Migrate(ctx, db))

	listings := NewListingRepo(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	a, err := domain.NewListing("u1", "Mountain bike", "barely used", "Sports", "Sydney", now)
	require.NoError(t, err)
	b, err := domain.NewListing("u2", "Desk lamp", "", "Home", "Sydney", now.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, listings.Create(ctx, a))
	require.NoError(t, listings.Create(ctx, b))

	got, err := listings.Search(ctx, domain.ListingFilter{Query: "BIKE"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	l, err := listings.RegisterInterest(ctx, b.ID, "u1", now)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Views)
	assert.Equal(t, []string{"u1"}, l.Interested)

	convs := NewConversationRepo(db)
	c, err := domain.NewConversation(b.ID, []string{"u2", "u1"}, now)
	require.NoError(t, err)
	require.NoError(t, convs.Create(ctx, c))

	m, err := domain.NewMessage(c.ID, "u1", "is it still available?", now)
	require.NoError(t, err)
	updated, err := convs.AppendMessage(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Unread["u2"])
	assert.Equal(t, 0, updated.Unread["u1"])

	found, err := convs.Find(ctx, b.ID, []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
}
