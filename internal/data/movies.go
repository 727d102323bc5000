package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/souvikmndl/ott-records/internal/validator"
)

// Movie is a single row of the ott table
type Movie struct {
	ID       int64  `json:"id" db:"id"`             // unique integer ID assigned by the db
	Title    string `json:"title" db:"title"`       // movie title
	Director string `json:"director" db:"director"` // movie director
	Budget   string `json:"budget" db:"budget"`     // free form budget text
	Location string `json:"location" db:"location"` // shooting location
	Duration string `json:"duration" db:"duration"` // free form duration text
	Year     string `json:"year" db:"year"`         // release year or time
}

// ValidateMovie checks the fields required on every write
func ValidateMovie(v *validator.Validator, movie *Movie) {
	v.Check(validator.NotBlank(movie.Title), "title", "must be provided")
	v.Check(validator.MaxChars(movie.Title, 500), "title", "must not be more than 500 bytes long")

	v.Check(validator.NotBlank(movie.Director), "director", "must be provided")
	v.Check(validator.NotBlank(movie.Year), "year", "must be provided")
}

// MovieModel contains the queries for the ott table
type MovieModel struct {
	DB *sqlx.DB
}

const (
	movieColumns = `id, title, director, budget, location, duration, year`

	queryTimeout = 3 * time.Second
)

// Insert adds a new row and fills in the id the db assigned to it
func (m MovieModel) Insert(ctx context.Context, movie *Movie) error {
	query := `
        INSERT INTO ott (title, director, budget, location, duration, year)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING ` + movieColumns

	args := []any{movie.Title, movie.Director, movie.Budget, movie.Location, movie.Duration, movie.Year}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return m.DB.QueryRowxContext(ctx, m.DB.Rebind(query), args...).StructScan(movie)
}

// GetAll returns one page of rows ordered by id along with the total row count
func (m MovieModel) GetAll(ctx context.Context, filters Filters) ([]Movie, int, error) {
	return m.page(ctx, "", nil, filters)
}

/*
Search returns one page of rows whose title contains q, ignoring case. Only the title
is matched, and q is matched literally: % and _ typed by the user are not wildcards.
*/
func (m MovieModel) Search(ctx context.Context, q string, filters Filters) ([]Movie, int, error) {
	pattern := "%" + escapeLike(q) + "%"
	lower := m.lowerFunc()
	where := `WHERE ` + lower + `(title) LIKE ` + lower + `(?) ESCAPE '\'`
	return m.page(ctx, where, []any{pattern}, filters)
}

/*
page runs the count and the select as two separate queries. A count(*) OVER() column
would save a round trip, but it vanishes together with the rows once the page is past
the end, and the total has to be reported for those pages too.
*/
func (m MovieModel) page(ctx context.Context, where string, args []any, filters Filters) ([]Movie, int, error) {
	countQuery := `SELECT COUNT(*) FROM ott ` + where

	query := `
        SELECT ` + movieColumns + `
        FROM ott ` + where + `
        ORDER BY id ASC
        LIMIT ? OFFSET ?`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	err := m.DB.GetContext(ctx, &total, m.DB.Rebind(countQuery), args...)
	if err != nil {
		return nil, 0, err
	}

	// non-nil so an empty page encodes as [] rather than null
	movies := []Movie{}

	pageArgs := append(append([]any{}, args...), filters.limit(), filters.offset())
	err = m.DB.SelectContext(ctx, &movies, m.DB.Rebind(query), pageArgs...)
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// Update replaces every field of the row with the given id
func (m MovieModel) Update(ctx context.Context, movie *Movie) error {
	query := `
        UPDATE ott
        SET title = ?, director = ?, budget = ?, location = ?, duration = ?, year = ?
        WHERE id = ?
        RETURNING ` + movieColumns

	args := []any{movie.Title, movie.Director, movie.Budget, movie.Location, movie.Duration, movie.Year, movie.ID}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := m.DB.QueryRowxContext(ctx, m.DB.Rebind(query), args...).StructScan(movie)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// Delete removes the row with the given id and returns what it contained
func (m MovieModel) Delete(ctx context.Context, id int64) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
        DELETE FROM ott
        WHERE id = ?
        RETURNING ` + movieColumns

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var movie Movie

	err := m.DB.QueryRowxContext(ctx, m.DB.Rebind(query), id).StructScan(&movie)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &movie, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
