package search

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// Defaults for a freshly constructed Controller.
const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultPageSize = 20
)

// Fetcher retrieves the full listing set for one query pass. The
// catalog is fetched fresh on every query; there is no incremental
// sync.
type Fetcher interface {
	Listings(ctx context.Context) ([]domain.Listing, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]domain.Listing, error)

// Listings calls f.
func (f FetcherFunc) Listings(ctx context.Context) ([]domain.Listing, error) {
	return f(ctx)
}

// Controller coordinates re-querying as the user edits filters. Term
// edits are debounced; every other mutation queries immediately. Each
// issued query cancels the pending debounce and aborts the in-flight
// fetch, and a generation counter ensures only the latest issued query
// delivers results, so a slow stale response can never overwrite a
// fresher one.
//
// Results and errors arrive on the callbacks from fetch goroutines, one
// at a time. There is no automatic retry; a failed fetch surfaces once
// through the error callback.
type Controller struct {
	fetch    Fetcher
	onResult func(Result)
	onError  func(error)
	debounce time.Duration

	mu     sync.Mutex
	query  Query
	timer  *time.Timer
	cancel context.CancelFunc
	gen    uint64
	closed bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithDebounce overrides the term-edit debounce delay.
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *Controller) { c.debounce = d }
}

// WithErrorHandler sets the callback for failed fetches. Without one,
// fetch errors are dropped.
func WithErrorHandler(fn func(error)) ControllerOption {
	return func(c *Controller) { c.onError = fn }
}

// WithQuery sets the initial query state.
func WithQuery(q Query) ControllerOption {
	return func(c *Controller) { c.query = q }
}

// NewController returns a Controller delivering pages to onResult.
// Nothing is fetched until the first mutation or Search call.
func NewController(fetch Fetcher, onResult func(Result), opts ...ControllerOption) *Controller {
	c := &Controller{
		fetch:    fetch,
		onResult: onResult,
		debounce: DefaultDebounce,
		query:    Query{Page: 1, PageSize: DefaultPageSize},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns a snapshot of the current query state.
func (c *Controller) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetTerm updates the keyword term and resets to page 1. The query is
// issued after the debounce delay; further edits within the delay
// restart it.
func (c *Controller) SetTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query.Term = term
	c.query.Page = 1
	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.issueLocked()
	})
}

// Search issues the current query immediately, bypassing any pending
// debounce.
func (c *Controller) Search() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issueLocked()
}

// SetScope changes the keyword scope, resets to page 1 and re-queries.
func (c *Controller) SetScope(s Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query.Scope = s
	c.query.Page = 1
	c.issueLocked()
}

// SetMatch changes the match condition, resets to page 1 and
// re-queries.
func (c *Controller) SetMatch(m Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query.Match = m
	c.query.Page = 1
	c.issueLocked()
}

// SetKind changes the material-kind filter, resets to page 1 and
// re-queries.
func (c *Controller) SetKind(k domain.MaterialType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query.Kind = k
	c.query.Page = 1
	c.issueLocked()
}

// SetSort changes the sort key, resets to page 1 and re-queries.
func (c *Controller) SetSort(s Sort) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query.Sort = s
	c.query.Page = 1
	c.issueLocked()
}

// SetPage moves to another page of the same query and re-queries.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query.Page = page
	c.issueLocked()
}

// SetPageSize changes the page size and re-queries. The current page
// number is preserved even though its contents shift.
func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query.PageSize = size
	c.issueLocked()
}

// Close cancels the pending debounce timer and aborts any in-flight
// fetch. Further mutations are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopTimerLocked()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

// issueLocked starts a fetch for the current query, superseding any
// pending debounce and in-flight fetch. Caller holds the lock.
func (c *Controller) issueLocked() {
	if c.closed {
		return
	}
	c.stopTimerLocked()
	if c.cancel != nil {
		c.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.gen++

	go c.run(ctx, c.gen, c.query)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// run fetches, filters and delivers one query generation. Superseded
// generations and canceled fetches deliver nothing.
func (c *Controller) run(ctx context.Context, gen uint64, q Query) {
	listings, err := c.fetch.Listings(ctx)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		if c.stale(gen) {
			return
		}
		if c.onError != nil {
			c.onError(err)
		}
		return
	}
	if ctx.Err() != nil || c.stale(gen) {
		return
	}

	c.onResult(Run(listings, q))
}

// stale reports whether gen has been superseded by a newer issue.
func (c *Controller) stale(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen != c.gen || c.closed
}
