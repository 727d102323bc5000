package main

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitShutdown(t *testing.T) {
	t.Run("shutdown error is returned once", func(t *testing.T) {
		app := newTestApplication(t)

		quit := make(chan os.Signal, 1)
		quit <- syscall.SIGTERM

		calls := 0
		err := app.awaitShutdown(quit, func(ctx context.Context) error {
			calls++
			return errors.New("listener stuck")
		})

		assert.EqualError(t, err, "listener stuck")
		assert.Equal(t, 1, calls)
	})

	t.Run("waits for background tasks", func(t *testing.T) {
		app := newTestApplication(t)

		var finished atomic.Bool
		release := make(chan struct{})
		app.background(func() {
			<-release
			finished.Store(true)
		})

		quit := make(chan os.Signal, 1)
		quit <- syscall.SIGINT

		done := make(chan error, 1)
		go func() {
			done <- app.awaitShutdown(quit, func(ctx context.Context) error {
				_, ok := ctx.Deadline()
				assert.True(t, ok)
				return nil
			})
		}()

		select {
		case <-done:
			t.Fatal("returned before background task finished")
		case <-time.After(20 * time.Millisecond):
		}

		close(release)

		select {
		case err := <-done:
			require.NoError(t, err)
			assert.True(t, finished.Load())
		case <-time.After(2 * time.Second):
			t.Fatal("awaitShutdown never returned")
		}
	})
}
