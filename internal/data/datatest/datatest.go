// Package datatest provides an in-memory record store for tests.
package datatest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/souvikmndl/ott-records/internal/data"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// NewDB opens a migrated in-memory SQLite database.
// It is closed automatically when the test completes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	require.NoError(t, data.Migrate(context.Background(), db))
	t.Cleanup(func() { db.Close() })

	return db
}

// NewModels returns models backed by a fresh in-memory database.
func NewModels(t *testing.T) data.Models {
	t.Helper()
	return data.NewModels(NewDB(t))
}

// Seed inserts the given movies in order and returns them with their ids set.
func Seed(t *testing.T, models data.Models, movies ...data.Movie) []data.Movie {
	t.Helper()

	out := make([]data.Movie, 0, len(movies))
	for _, m := range movies {
		require.NoError(t, models.Movies.Insert(context.Background(), &m))
		out = append(out, m)
	}

	return out
}

// Movie builds a record that passes validation.
func Movie(title string) data.Movie {
	return data.Movie{
		Title:    title,
		Director: "Director of " + title,
		Year:     "2020",
	}
}
