package main

import (
	"fmt"
	"net/http"
)

const (
	recordNotFoundMessage = "No record found with this ID."
	missingFieldsMessage  = "Missing required fields: title, director, and year are mandatory."
	missingQueryMessage   = "Search query is required."
	invalidPagingMessage  = "Invalid pagination parameters."
)

// logError writes the err along with the request method, URI and request id
func (app *application) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		"method", r.Method,
		"uri", r.URL.RequestURI(),
		"request_id", app.contextGetRequestID(r),
	)
}

/*
errorResponse sends {error, details} to the client. details is whatever helps the
caller fix the request: a field -> message map for validation, the store's own message
for db failures, or nil.
*/
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, details any) {
	env := envelope{"error": message, "details": details}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse is used for unexpected problems like panics or encode failures
func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message, nil)
}

// storeErrorResponse reports a failed db call, passing its message through to the client
func (app *application) storeErrorResponse(w http.ResponseWriter, r *http.Request, message string, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, message, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponse(w, r, http.StatusNotFound, message, nil)
}

func (app *application) recordNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, recordNotFoundMessage, nil)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message, nil)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, message string, errors map[string]string) {
	app.errorResponse(w, r, http.StatusBadRequest, message, errors)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	app.errorResponse(w, r, http.StatusTooManyRequests, message, nil)
}
