package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func (app *application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	shutdownError := make(chan error)

	// background goroutine that lives as long as the server and waits for a signal
	go func() {
		// buffered, because signal.Notify() does not wait for a receiver to be ready
		quit := make(chan os.Signal, 1)

		// relay SIGINT and SIGTERM to quit. Other signals keep their default behaviour
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		shutdownError <- app.awaitShutdown(quit, srv.Shutdown)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	// Shutdown() makes ListenAndServe() return http.ErrServerClosed straight away,
	// so that one error means graceful shutdown has started
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

// awaitShutdown blocks until a signal arrives on quit, then stops the server with
// shutdown and waits for background tasks. Background tasks are only waited on
// once the server itself has stopped cleanly.
func (app *application) awaitShutdown(quit <-chan os.Signal, shutdown func(context.Context) error) error {
	s := <-quit

	app.logger.Info("shutting down server", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		return err
	}

	// Shutdown() does not wait for the goroutines started by app.background(),
	// so pending notification mails are waited on here
	app.logger.Info("completing background tasks")

	app.wg.Wait()

	return nil
}
