package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souvikmndl/ott-records/internal/data/datatest"
)

func TestMovieLifecycle(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.do(t, http.MethodPost, "/savemovies", map[string]string{
		"title":    "X",
		"director": "Y",
		"year":     "2020",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Data saved successfully!", body["message"])

	created := body["data"].(map[string]any)
	assert.Equal(t, "X", created["title"])
	id := idOf(t, created)
	assert.Positive(t, id)

	code, _, body = ts.do(t, http.MethodGet, "/getallmovies?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"X"}, titles(t, body))
	assert.EqualValues(t, 1, body["total"])

	code, _, body = ts.do(t, http.MethodDelete, fmt.Sprintf("/deletemovie/%d", id), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Deleted successfully!", body["message"])
	assert.Equal(t, id, idOf(t, body["deleted"]))

	code, _, body = ts.do(t, http.MethodGet, "/getallmovies?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, titles(t, body))
	assert.EqualValues(t, 0, body["total"])
}

func TestCreateMovieHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{
			name:     "valid",
			body:     `{"title":"Inception","director":"Nolan","budget":"160M","location":"Paris","duration":"148 min","year":"2010"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "numeric year",
			body:     `{"title":"Inception","director":"Nolan","year":2010}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "form posts id and notes",
			body:     `{"id":"","title":"Inception","director":"Nolan","year":"2010","notes":"rewatch"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing title",
			body:     `{"director":"Nolan","year":"2010"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  missingFieldsMessage,
		},
		{
			name:     "missing director",
			body:     `{"title":"Inception","year":"2010"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  missingFieldsMessage,
		},
		{
			name:     "blank year",
			body:     `{"title":"Inception","director":"Nolan","year":"  "}`,
			wantCode: http.StatusBadRequest,
			wantErr:  missingFieldsMessage,
		},
		{
			name:     "badly formed",
			body:     `{"title":"Inception",`,
			wantCode: http.StatusBadRequest,
			wantErr:  "body contains badly-formed JSON",
		},
		{
			name:     "unknown key",
			body:     `{"title":"Inception","director":"Nolan","year":"2010","rating":5}`,
			wantCode: http.StatusBadRequest,
			wantErr:  `body contains unknown key "rating"`,
		},
		{
			name:     "two values",
			body:     `{"title":"A","director":"B","year":"1"}{"title":"C"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "body must contain a single JSON value",
		},
		{
			name:     "empty",
			body:     "",
			wantCode: http.StatusBadRequest,
			wantErr:  "body must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)
			ts := newTestServer(t, app.routes())

			code, _, body := ts.do(t, http.MethodPost, "/savemovies", tt.body)
			assert.Equal(t, tt.wantCode, code)

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, body["error"])
				assert.Contains(t, body, "details")
			}

			// a rejected insert must not leave a row behind
			_, total, err := app.models.Movies.GetAll(t.Context(), defaultFilters())
			require.NoError(t, err)
			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, 1, total)
			} else {
				assert.Zero(t, total)
			}
		})
	}
}

func TestCreateMovieHandler_ValidationDetails(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.do(t, http.MethodPost, "/savemovies", map[string]string{"budget": "1"})
	require.Equal(t, http.StatusBadRequest, code)

	details := body["details"].(map[string]any)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "director")
	assert.Contains(t, details, "year")
}

func TestListMoviesHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	for i := 1; i <= 15; i++ {
		datatest.Seed(t, app.models, datatest.Movie(fmt.Sprintf("Movie %02d", i)))
	}

	t.Run("defaults", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/getallmovies", nil)
		require.Equal(t, http.StatusOK, code)

		assert.Equal(t, "All records fetched!", body["message"])
		assert.EqualValues(t, 15, body["total"])
		assert.EqualValues(t, 1, body["page"])
		assert.EqualValues(t, 10, body["limit"])
		assert.Len(t, titles(t, body), 10)
		assert.Equal(t, "Movie 01", titles(t, body)[0])
	})

	t.Run("second page", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/getallmovies?page=2&limit=10", nil)
		require.Equal(t, http.StatusOK, code)

		assert.EqualValues(t, 15, body["total"])
		assert.Equal(t, []string{"Movie 11", "Movie 12", "Movie 13", "Movie 14", "Movie 15"}, titles(t, body))
	})

	t.Run("past the last page", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/getallmovies?page=9&limit=5", nil)
		require.Equal(t, http.StatusOK, code)

		assert.EqualValues(t, 15, body["total"])
		assert.Empty(t, titles(t, body))
	})

	t.Run("invalid paging", func(t *testing.T) {
		for _, qs := range []string{"page=abc", "limit=1.5", "page=0", "limit=-3", "limit=101"} {
			code, _, body := ts.do(t, http.MethodGet, "/getallmovies?"+qs, nil)
			assert.Equal(t, http.StatusBadRequest, code, qs)
			assert.Equal(t, invalidPagingMessage, body["error"], qs)
		}
	})

	t.Run("non numeric page is reported as such", func(t *testing.T) {
		_, _, body := ts.do(t, http.MethodGet, "/getallmovies?page=two", nil)
		details := body["details"].(map[string]any)
		assert.Equal(t, "must be an integer value", details["page"])
	})
}

func TestSearchMoviesHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	datatest.Seed(t, app.models,
		datatest.Movie("The Dark Knight"),
		datatest.Movie("Inception"),
		datatest.Movie("Knight and Day"),
		datatest.Movie("Dunkirk"),
	)

	t.Run("matches title ignoring case", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/searchmovies?q=kNiGhT", nil)
		require.Equal(t, http.StatusOK, code)

		assert.Equal(t, "Movies found!", body["message"])
		assert.EqualValues(t, 2, body["total"])
		for _, title := range titles(t, body) {
			assert.Contains(t, strings.ToLower(title), "knight")
		}
	})

	t.Run("total is independent of paging", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/searchmovies?q=knight&page=2&limit=1", nil)
		require.Equal(t, http.StatusOK, code)

		assert.EqualValues(t, 2, body["total"])
		assert.EqualValues(t, 2, body["page"])
		assert.EqualValues(t, 1, body["limit"])
		assert.Equal(t, []string{"Knight and Day"}, titles(t, body))
	})

	t.Run("blank query", func(t *testing.T) {
		for _, qs := range []string{"", "?q=", "?q=%20%20"} {
			code, _, body := ts.do(t, http.MethodGet, "/searchmovies"+qs, nil)
			assert.Equal(t, http.StatusBadRequest, code, qs)
			assert.Equal(t, missingQueryMessage, body["error"], qs)
		}
	})

	t.Run("invalid paging", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodGet, "/searchmovies?q=knight&limit=zero", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, invalidPagingMessage, body["error"])
	})
}

func TestUpdateMovieHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	seeded := datatest.Seed(t, app.models, datatest.Movie("Old Title"))
	id := seeded[0].ID

	t.Run("full replace", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodPut, fmt.Sprintf("/updatemovie/%d", id), map[string]any{
			"id":       id,
			"title":    "New Title",
			"director": "Someone",
			"year":     "2001",
		})
		require.Equal(t, http.StatusOK, code)

		assert.Equal(t, "Updated successfully!", body["message"])
		updated := body["data"].(map[string]any)
		assert.Equal(t, "New Title", updated["title"])
		assert.Equal(t, "", updated["budget"])
		assert.Equal(t, id, idOf(t, updated))
	})

	t.Run("missing record", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodPut, fmt.Sprintf("/updatemovie/%d", id+100), map[string]any{
			"title":    "Ghost",
			"director": "Nobody",
			"year":     "1",
		})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, recordNotFoundMessage, body["error"])

		movies, total, err := app.models.Movies.GetAll(t.Context(), defaultFilters())
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "New Title", movies[0].Title)
	})

	t.Run("invalid id", func(t *testing.T) {
		code, _, _ := ts.do(t, http.MethodPut, "/updatemovie/abc", map[string]any{"title": "A", "director": "B", "year": "1"})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("validation", func(t *testing.T) {
		code, _, body := ts.do(t, http.MethodPut, fmt.Sprintf("/updatemovie/%d", id), map[string]any{"title": ""})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, missingFieldsMessage, body["error"])
	})
}

func TestDeleteMovieHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	seeded := datatest.Seed(t, app.models, datatest.Movie("A"), datatest.Movie("B"))

	code, _, body := ts.do(t, http.MethodDelete, fmt.Sprintf("/deletemovie/%d", seeded[0].ID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "A", body["deleted"].(map[string]any)["title"])

	_, _, body = ts.do(t, http.MethodGet, "/getallmovies", nil)
	assert.EqualValues(t, 1, body["total"])
	assert.Equal(t, []string{"B"}, titles(t, body))

	code, _, body = ts.do(t, http.MethodDelete, fmt.Sprintf("/deletemovie/%d", seeded[0].ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, recordNotFoundMessage, body["error"])

	code, _, _ = ts.do(t, http.MethodDelete, "/deletemovie/-1", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStoreErrorsPassThrough(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, err := app.models.Movies.DB.Exec("DROP TABLE ott")
	require.NoError(t, err)

	code, _, body := ts.do(t, http.MethodGet, "/getallmovies", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to fetch data", body["error"])
	assert.Contains(t, body["details"], "no such table")
}
