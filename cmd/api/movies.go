package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/souvikmndl/ott-records/internal/data"
	"github.com/souvikmndl/ott-records/internal/validator"
)

// movieInput is the body accepted by create and update. The edit form posts the whole
// record back, so id and notes are accepted and thrown away: the id in the URL wins
// and notes are not stored.
type movieInput struct {
	ID       json.RawMessage `json:"id"`
	Title    data.Text       `json:"title"`
	Director data.Text       `json:"director"`
	Budget   data.Text       `json:"budget"`
	Location data.Text       `json:"location"`
	Duration data.Text       `json:"duration"`
	Year     data.Text       `json:"year"`
	Notes    data.Text       `json:"notes"`
}

func (in movieInput) movie() *data.Movie {
	return &data.Movie{
		Title:    in.Title.String(),
		Director: in.Director.String(),
		Budget:   in.Budget.String(),
		Location: in.Location.String(),
		Duration: in.Duration.String(),
		Year:     in.Year.String(),
	}
}

func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input movieInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie := input.movie()

	v := validator.New()
	if data.ValidateMovie(v, movie); !v.Valid() {
		app.failedValidationResponse(w, r, missingFieldsMessage, v.Errors)
		return
	}

	err = app.models.Movies.Insert(r.Context(), movie)
	if err != nil {
		app.storeErrorResponse(w, r, "Failed to save data", err)
		return
	}

	app.notifyChange("created", *movie)

	err = app.writeJSON(w, http.StatusCreated, envelope{"message": "Data saved successfully!", "data": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()

	filters, ok := app.readFilters(w, r, v)
	if !ok {
		return
	}

	movies, total, err := app.models.Movies.GetAll(r.Context(), filters)
	if err != nil {
		app.storeErrorResponse(w, r, "Failed to fetch data", err)
		return
	}

	env := envelope{
		"message": "All records fetched!",
		"total":   total,
		"page":    filters.Page,
		"limit":   filters.Limit,
		"data":    movies,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) searchMoviesHandler(w http.ResponseWriter, r *http.Request) {
	q := app.readString(r.URL.Query(), "q", "")
	if !validator.NotBlank(q) {
		app.failedValidationResponse(w, r, missingQueryMessage, map[string]string{"q": "must be provided"})
		return
	}

	v := validator.New()

	filters, ok := app.readFilters(w, r, v)
	if !ok {
		return
	}

	movies, total, err := app.models.Movies.Search(r.Context(), q, filters)
	if err != nil {
		app.storeErrorResponse(w, r, "Failed to search movies.", err)
		return
	}

	env := envelope{
		"message": "Movies found!",
		"total":   total,
		"page":    filters.Page,
		"limit":   filters.Limit,
		"data":    movies,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// readFilters parses page and limit, writing a 400 and returning false if either is bad
func (app *application) readFilters(w http.ResponseWriter, r *http.Request, v *validator.Validator) (data.Filters, bool) {
	qs := r.URL.Query()

	filters := data.Filters{
		Page:  app.readInt(qs, "page", data.DefaultPage, v),
		Limit: app.readInt(qs, "limit", data.DefaultLimit, v),
	}

	if data.ValidateFilters(v, filters); !v.Valid() {
		app.failedValidationResponse(w, r, invalidPagingMessage, v.Errors)
		return filters, false
	}

	return filters, true
}

func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.recordNotFoundResponse(w, r)
		return
	}

	var input movieInput

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie := input.movie()
	movie.ID = id

	v := validator.New()
	if data.ValidateMovie(v, movie); !v.Valid() {
		app.failedValidationResponse(w, r, missingFieldsMessage, v.Errors)
		return
	}

	err = app.models.Movies.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r)
		default:
			app.storeErrorResponse(w, r, "Failed to update data", err)
		}
		return
	}

	app.notifyChange("updated", *movie)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Updated successfully!", "data": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.recordNotFoundResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r)
		default:
			app.storeErrorResponse(w, r, "Failed to delete record", err)
		}
		return
	}

	app.notifyChange("deleted", *movie)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Deleted successfully!", "deleted": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// notifyChange mails the configured recipient about a write. It runs in the
// background so a slow SMTP server never holds up the response.
func (app *application) notifyChange(action string, movie data.Movie) {
	if app.mailer == nil {
		return
	}

	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		tmplData := map[string]any{
			"Action": action,
			"Movie":  movie,
		}

		err := app.mailer.Send(ctx, app.config.notify.recipient, "record_change.tmpl", tmplData)
		if err != nil {
			app.logger.Error(err.Error(), "action", action, "movie_id", movie.ID)
		}
	})
}
