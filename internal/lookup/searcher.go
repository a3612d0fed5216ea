// Package lookup holds the client-side plumbing every entity picker shares:
// a debounced remote searcher and a single-flight submission guard. Each
// picker instance owns its own Searcher, so concurrently open dialogs never
// contaminate each other's results.
package lookup

import (
	"context"
	"sync"
	"time"
)

// FetchFunc runs the remote query for a search term.
type FetchFunc[T any] func(ctx context.Context, query string) (T, error)

// Result carries a completed fetch back to the consumer.
type Result[T any] struct {
	Query string
	Value T
	Err   error
}

// Searcher coalesces rapid Query calls into one fetch per quiet period. Only
// the newest query's outcome is delivered: a fetch that finishes after a
// newer query was issued is dropped, and its in-flight context is cancelled,
// so stale responses can never overwrite later-typed state.
type Searcher[T any] struct {
	fetch FetchFunc[T]
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	cancel context.CancelFunc

	results chan Result[T]
	closed  bool
}

// NewSearcher builds a searcher around fetch. A delay of 0 falls back to the
// conventional 300ms quiet period.
func NewSearcher[T any](fetch FetchFunc[T], delay time.Duration) *Searcher[T] {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Searcher[T]{
		fetch:   fetch,
		delay:   delay,
		results: make(chan Result[T], 1),
	}
}

// Results delivers at most the latest outcome; older pending results are
// replaced, never queued behind.
func (s *Searcher[T]) Results() <-chan Result[T] { return s.results }

// Query schedules a fetch for the term after the quiet period. A newer call
// cancels the pending schedule and any in-flight fetch.
func (s *Searcher[T]) Query(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.timer = time.AfterFunc(s.delay, func() { s.run(gen, query) })
}

func (s *Searcher[T]) run(gen uint64, query string) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	value, err := s.fetch(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return // a newer query won; drop this result
	}
	s.cancel = nil
	// replace any undelivered older result rather than queueing behind it
	select {
	case <-s.results:
	default:
	}
	s.results <- Result[T]{Query: query, Value: value, Err: err}
}

// Close stops pending work; no results are delivered afterwards.
func (s *Searcher[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
