package main

import (
	"context"
	"net/http"
)

// contextKey type to prevent collisions while storing key value pairs in context
type contextKey string

// "request_id" key of type contextKey to store the request id in context
const requestIDContextKey = contextKey("request_id")

// context.WithValue(r.Context(), requestIDContextKey, id) creates a new ctx with the id
// and all existing data in "r". r.WithContext(ctx) returns a shallow copy of r using it.
func (app *application) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

// contextGetRequestID returns the id set by the requestID mw, or "" outside of it
func (app *application) contextGetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}
