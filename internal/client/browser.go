package client

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/souvikmndl/ott-records/internal/data"
)

// DefaultDebounce is how long the search box has to be quiet before a search is sent
const DefaultDebounce = 500 * time.Millisecond

// Status of the last request a Browser issued
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of everything a view renders
type State struct {
	Query   string // what is in the search box; blank means list mode
	Page    int
	Limit   int
	Total   int
	Entries []data.Movie
	Status  Status
	Err     error

	version uint64
}

// Searching reports whether the view is filtered by a search query
func (s State) Searching() bool {
	return strings.TrimSpace(s.Query) != ""
}

// LastPage is the highest page with rows on it, at least 1
func (s State) LastPage() int {
	if s.Limit < 1 || s.Total == 0 {
		return 1
	}
	return (s.Total + s.Limit - 1) / s.Limit
}

// Option configures a Browser
type Option func(*Browser)

// WithDebounce sets the quiet period before a search is sent
func WithDebounce(d time.Duration) Option {
	return func(b *Browser) { b.debounce = d }
}

// WithLimit sets the page size
func WithLimit(limit int) Option {
	return func(b *Browser) { b.state.Limit = limit }
}

// WithOnChange registers fn to be called with a snapshot after every state change.
// Calls are serialized and never go back in time. fn must not call back into the
// Browser's setters on the same goroutine.
func WithOnChange(fn func(State)) Option {
	return func(b *Browser) { b.onChange = fn }
}

/*
Browser drives a paginated, searchable view of the records.

Typing into the search box restarts a debounce timer; only when it fires is a request
sent. Every request gets a sequence number and only the response carrying the latest
number may touch the state, so a slow response for an old query can never overwrite
a newer one. Starting a request also cancels the one before it.
*/
type Browser struct {
	svc      Service
	debounce time.Duration
	onChange func(State)

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	timer    *time.Timer
	timerGen uint64
	seq      uint64
	inflight context.CancelFunc

	notifyMu sync.Mutex
	notified uint64
}

// NewBrowser creates a Browser on page 1 in list mode. Nothing is fetched until
// Refresh, SetPage or SetSearch is called. Requests are bound to ctx.
func NewBrowser(ctx context.Context, svc Service, opts ...Option) *Browser {
	b := &Browser{
		svc:      svc,
		debounce: DefaultDebounce,
		state: State{
			Page:  data.DefaultPage,
			Limit: data.DefaultLimit,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	b.ctx, b.cancel = context.WithCancel(ctx)

	return b
}

// State returns a snapshot of the current state
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.snapshot()
}

// SetSearch records a change to the search box and (re)starts the debounce timer.
// When the timer fires the active mode is fetched from page 1.
func (b *Browser) SetSearch(q string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state.Query = q
	b.bump()

	b.stopTimer()
	gen := b.timerGen
	b.timer = time.AfterFunc(b.debounce, func() {
		b.mu.Lock()
		// a later keystroke, page change or Close got here first
		if gen != b.timerGen {
			b.mu.Unlock()
			return
		}
		b.timer = nil
		b.state.Page = data.DefaultPage
		b.mu.Unlock()

		b.issue()
	})
}

// SetPage fetches page n of the active mode right away. A search still waiting on
// its debounce is sent now for page n instead.
func (b *Browser) SetPage(n int) {
	if n < 1 {
		n = 1
	}

	b.mu.Lock()
	b.stopTimer()
	b.state.Page = n
	b.mu.Unlock()

	b.issue()
}

// NextPage moves one page forward, stopping at the last page
func (b *Browser) NextPage() {
	st := b.State()
	if st.Page >= st.LastPage() {
		return
	}
	b.SetPage(st.Page + 1)
}

// PrevPage moves one page back
func (b *Browser) PrevPage() {
	b.SetPage(b.State().Page - 1)
}

// Refresh fetches the current page of the active mode again
func (b *Browser) Refresh() {
	b.SetPage(b.State().Page)
}

// Create saves movie then refreshes the view
func (b *Browser) Create(ctx context.Context, movie data.Movie) (*data.Movie, error) {
	created, err := b.svc.Create(ctx, movie)
	if err != nil {
		return nil, err
	}

	b.Refresh()
	return created, nil
}

// Update replaces record id then refreshes the view
func (b *Browser) Update(ctx context.Context, id int64, movie data.Movie) (*data.Movie, error) {
	updated, err := b.svc.Update(ctx, id, movie)
	if err != nil {
		return nil, err
	}

	b.Refresh()
	return updated, nil
}

// Delete removes record id then refreshes the view
func (b *Browser) Delete(ctx context.Context, id int64) (*data.Movie, error) {
	deleted, err := b.svc.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Refresh()
	return deleted, nil
}

// Close stops the debounce timer and cancels any request in flight
func (b *Browser) Close() {
	b.mu.Lock()
	b.stopTimer()
	b.mu.Unlock()

	b.cancel()
}

// issue starts a request for the current mode and page. Only the latest issued
// request is allowed to write its result back.
func (b *Browser) issue() {
	b.mu.Lock()

	if b.inflight != nil {
		b.inflight()
	}

	b.seq++
	seq := b.seq

	ctx, cancel := context.WithCancel(b.ctx)
	b.inflight = cancel

	query := b.state.Query
	searching := b.state.Searching()
	page, limit := b.state.Page, b.state.Limit

	b.state.Status = StatusLoading
	b.state.Err = nil
	b.bump()
	loading := b.snapshot()

	b.mu.Unlock()
	b.notify(loading)

	go func() {
		defer cancel()

		var (
			p   *Page
			err error
		)
		if searching {
			p, err = b.svc.Search(ctx, query, page, limit)
		} else {
			p, err = b.svc.List(ctx, page, limit)
		}

		b.mu.Lock()
		if seq != b.seq {
			// superseded, drop it
			b.mu.Unlock()
			return
		}
		b.inflight = nil

		if err != nil {
			b.state.Status = StatusError
			b.state.Err = err
		} else {
			b.state.Status = StatusIdle
			b.state.Entries = p.Data
			b.state.Total = p.Total
		}
		b.bump()
		st := b.snapshot()
		b.mu.Unlock()

		b.notify(st)
	}()
}

// stopTimer cancels a pending debounce. Callers hold b.mu.
func (b *Browser) stopTimer() {
	b.timerGen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// bump marks the state as changed. Callers hold b.mu.
func (b *Browser) bump() {
	b.state.version++
}

// snapshot copies the state so callers can keep it. Callers hold b.mu.
func (b *Browser) snapshot() State {
	st := b.state
	st.Entries = slices.Clone(b.state.Entries)
	return st
}

// notify hands st to the OnChange callback unless a newer state was already delivered
func (b *Browser) notify(st State) {
	if b.onChange == nil {
		return
	}

	b.notifyMu.Lock()
	defer b.notifyMu.Unlock()

	if st.version <= b.notified {
		return
	}
	b.notified = st.version

	b.onChange(st)
}
