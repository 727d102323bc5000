package main

import (
	"expvar"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tomasen/realip"
	"golang.org/x/time/rate"
)

// expvar panics if a name is published twice, so these live at package level
// instead of being created every time the mw chain is built
var (
	totalRequestsReceived           = expvar.NewInt("total_requests_received")
	totalResponsesSent              = expvar.NewInt("total_responses_sent")
	totalProcessingTimeMicroseconds = expvar.NewInt("total_processing_time_μs")
	totalResponsesSentByStatus      = expvar.NewMap("total_responses_sent_by_status")
)

// wrapping existing http.ResponseWriter interface to capture status codes
type metricsResponseWriter struct {
	wrapped       http.ResponseWriter
	statusCode    int
	headerWritten bool
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{
		wrapped:    w,
		statusCode: http.StatusOK,
	}
}

// Header returns header map from origin http.ResponseWriter that we wrapped
func (mw *metricsResponseWriter) Header() http.Header {
	return mw.wrapped.Header()
}

// WriteHeader writes the statusCode to our wrapper if not already written
// It does a passthrough to the origin wrapper http.ResponseWriter
func (mw *metricsResponseWriter) WriteHeader(statusCode int) {
	mw.wrapped.WriteHeader(statusCode)

	if !mw.headerWritten {
		mw.statusCode = statusCode
		mw.headerWritten = true
	}
}

// Write does a pass through to the Write() method of the wrapped http.ResponseWriter()
// Calling this will automatically write any resp headers
func (mw *metricsResponseWriter) Write(b []byte) (int, error) {
	mw.headerWritten = true
	return mw.wrapped.Write(b)
}

// Unwrap returns the wrapped http.ResponseWriter
func (mw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return mw.wrapped
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// deferred func will be called after panic
		defer func() {
			if err := recover(); err != nil {
				// "Connection: close" makes the server close the connection once
				// the response has been sent
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestID tags every request with an id that shows up in error logs and in the
// X-Request-ID response header. A valid uuid sent by a proxy is reused.
func (app *application) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		r = app.contextSetRequestID(r, id)

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mw := newMetricsResponseWriter(w)

		next.ServeHTTP(mw, r)

		app.logger.Debug("request",
			"ip", realip.FromRequest(r),
			"method", r.Method,
			"uri", r.URL.RequestURI(),
			"status", mw.statusCode,
			"duration", time.Since(start),
			"request_id", app.contextGetRequestID(r),
		)
	})
}

func (app *application) rateLimit(next http.Handler) http.Handler {

	if !app.config.limiter.enabled {
		return next
	}

	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client) // for client based rate limiting
	)

	// every minute, forget clients that have been quiet for 3 minutes
	go func() {
		for {
			time.Sleep(time.Minute)

			// Lock the mutex to prevent any rate limiter checks happening while clean up
			mu.Lock()

			for ip, client := range clients {
				if time.Since(client.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}

			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// fetch real IP of client, sometimes it might be hidden behind proxies
		ip := realip.FromRequest(r) // looks for the X-Forwarded-For or X-Real-IP header

		// Lock the rate limiter as requests are concurrently processed
		mu.Lock()

		if _, found := clients[ip]; !found {
			clients[ip] = &client{limiter: rate.NewLimiter(rate.Limit(app.config.limiter.rps), app.config.limiter.burst)}
		}

		clients[ip].lastSeen = time.Now()

		// call the rate limiter check for this client only
		if !clients[ip].limiter.Allow() {
			mu.Unlock()
			app.rateLimitExceededResponse(w, r)
			return
		}

		// not deferred, or the mutex would stay locked until every
		// handler downstream of this mw has returned
		mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Allows cors for whitelisted origins, or for any origin when "*" is trusted
func (app *application) enableCORS(next http.Handler) http.Handler {
	allowAny := slices.Contains(app.config.cors.trustedOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Origin header might vary, based on the incoming request origin
		w.Header().Add("Vary", "Origin")

		// for preflight CORS
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")

		if origin != "" && (allowAny || slices.Contains(app.config.cors.trustedOrigins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)

			// preflight asks which of the CORS unsafe methods and headers are allowed.
			// The front-end sends PUT and DELETE with a JSON body.
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, PUT, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

				w.WriteHeader(http.StatusOK)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// noCache keeps browsers and proxies from holding on to stale pages of records
func (app *application) noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func (app *application) metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		totalRequestsReceived.Add(1)
		mw := newMetricsResponseWriter(w)

		next.ServeHTTP(mw, r)
		totalResponsesSent.Add(1)

		totalResponsesSentByStatus.Add(strconv.Itoa(mw.statusCode), 1)
		duration := time.Since(start).Microseconds()
		totalProcessingTimeMicroseconds.Add(duration)
	})
}
