// Package listsync implements the filter → debounce → fetch → paginate
// pipeline shared by every paged listing in the console.
//
// A Synchronizer turns bursts of filter and page changes into at most
// one in-flight fetch, and guarantees that only the most recently
// dispatched fetch may commit its result: a superseded fetch has its
// context cancelled, and even if it resolves anyway its result is
// dropped rather than overwriting newer state.
package listsync

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period collapsing rapid filter changes
// into a single fetch.
const DefaultDebounce = 300 * time.Millisecond

// Result is one page of fetched entities, as reported by the backend.
type Result[T any] struct {
	Items     []T
	Page      int
	PageCount int
	Total     int
}

// FetchFunc loads one page matching the given filters. The context is
// cancelled when a newer request supersedes this one.
type FetchFunc[T any] func(ctx context.Context, filters map[string]string, page, size int) (Result[T], error)

// Pagination describes where the current page sits.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

// State is an immutable snapshot of a synchronized list. Items and
// Filters are replaced wholesale on every change, never mutated in
// place.
type State[T any] struct {
	Items      []T
	Filters    map[string]string
	Page       int
	Pagination Pagination
	Loading    bool
	Err        string
}

// Config tunes a Synchronizer. Zero values select the defaults.
type Config struct {
	Debounce time.Duration
	PageSize int
}

// Synchronizer keeps a paged entity list in sync with its filters.
type Synchronizer[T any] struct {
	fetch    FetchFunc[T]
	debounce time.Duration
	pageSize int

	mu      sync.Mutex
	emitMu  sync.Mutex
	state   State[T]
	subs    map[int]func(State[T])
	nextSub int

	timer  *time.Timer
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// New creates a Synchronizer around the given fetch function.
func New[T any](fetch FetchFunc[T], cfg Config) *Synchronizer[T] {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}

	return &Synchronizer[T]{
		fetch:    fetch,
		debounce: cfg.Debounce,
		pageSize: cfg.PageSize,
		state:    State[T]{Filters: map[string]string{}},
		subs:     make(map[int]func(State[T])),
	}
}

// State returns the latest snapshot.
func (s *Synchronizer[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive every future snapshot, in order.
// It returns a cancel function. fn must not call back into the
// Synchronizer's mutating methods.
func (s *Synchronizer[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetFilters merges the given filter values, resets to the first page,
// and requests a (debounced) search. Empty values delete the filter.
func (s *Synchronizer[T]) SetFilters(filters map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	merged := copyFilters(s.state.Filters)
	for k, v := range filters {
		if v == "" {
			delete(merged, k)
		} else {
			merged[k] = v
		}
	}
	s.state.Filters = merged
	s.state.Page = 0

	s.requestLocked()
}

// ChangePage moves to the given page and requests a search. The value
// is passed to the backend as-is: the response's pagination block is
// the authority on what pages exist.
func (s *Synchronizer[T]) ChangePage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.state.Page = page
	s.requestLocked()
}

// Reload requests a search with the current filters and page.
func (s *Synchronizer[T]) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.requestLocked()
}

// Close cancels any pending debounce and in-flight fetch. Further
// requests are ignored.
func (s *Synchronizer[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// requestLocked (re)arms the debounce timer. Successive calls inside
// the quiet period collapse into one dispatch carrying the latest
// filters and page.
func (s *Synchronizer[T]) requestLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.dispatch)
}

// dispatch starts the fetch for the current criteria. It bumps the
// sequence counter and cancels the previous fetch; when the fetch
// returns, its result is committed only if no newer dispatch happened
// meanwhile.
func (s *Synchronizer[T]) dispatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.seq++
	seq := s.seq

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	filters := copyFilters(s.state.Filters)
	page := s.state.Page
	size := s.pageSize

	s.state.Loading = true
	s.state.Err = ""
	s.emitLocked()

	go func() {
		result, err := s.fetch(ctx, filters, page, size)
		s.commit(seq, result, err)
	}()
}

// commit applies a fetch outcome, unless a newer dispatch has
// superseded it.
func (s *Synchronizer[T]) commit(seq uint64, result Result[T], err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || s.closed {
		// Stale response; a newer request owns the state now.
		return
	}

	s.state.Loading = false
	if err != nil {
		// Keep the previous items: stale-but-valid data beats an
		// empty view.
		s.state.Err = err.Error()
		s.emitLocked()
		return
	}

	s.state.Err = ""
	s.state.Items = result.Items
	s.state.Page = result.Page
	s.state.Pagination = Pagination{
		CurrentPage: result.Page,
		TotalPages:  result.PageCount,
		TotalItems:  result.Total,
	}
	s.emitLocked()
}

// snapshotLocked returns a copy safe to hand out. Callers must hold
// s.mu.
func (s *Synchronizer[T]) snapshotLocked() State[T] {
	snap := s.state
	snap.Filters = copyFilters(s.state.Filters)
	return snap
}

// emitLocked delivers the current snapshot to all subscribers in
// mutation order. Callers must hold s.mu; it is released during
// delivery and re-acquired before returning.
func (s *Synchronizer[T]) emitLocked() {
	snap := s.snapshotLocked()
	fns := make([]func(State[T]), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}

	s.emitMu.Lock()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}

	s.emitMu.Unlock()
	s.mu.Lock()
}

func copyFilters(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
