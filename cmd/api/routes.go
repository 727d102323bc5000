package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	// anything the router does not know is handed to the front-end, which does its
	// own client side routing. A known path with the wrong method still gets a 405
	router.NotFound = app.frontendHandler()
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// movie routes
	router.HandlerFunc(http.MethodPost, "/savemovies", app.createMovieHandler)
	router.HandlerFunc(http.MethodGet, "/getallmovies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/searchmovies", app.searchMoviesHandler)
	router.HandlerFunc(http.MethodPut, "/updatemovie/:id", app.updateMovieHandler)
	router.HandlerFunc(http.MethodDelete, "/deletemovie/:id", app.deleteMovieHandler)

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	// noCache sits outside everything that can answer early (429, panics) so those
	// responses are not cached either. rateLimit runs before the handlers do any work
	return app.metrics(app.noCache(app.recoverPanic(app.requestID(app.logRequest(app.enableCORS(app.rateLimit(router)))))))
}
