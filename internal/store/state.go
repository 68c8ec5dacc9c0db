package store

import (
	"errors"
	"sync"

	"github.com/mkarlsen/skycast/internal/weather"
)

var (
	// ErrNotFound is returned before the first successful search has committed.
	ErrNotFound = errors.New("no weather data committed yet")
)

// ViewState is the concurrency-safe holder of the committed dashboard view,
// the shared loading flag, and the monotonic request token. It implements
// weather.StateStore.
//
// Token protocol: Begin issues the next token and raises the loading flag.
// Commit writes the view only if the token is still the latest issued one, so
// a slow run can never overwrite a newer run's result. Finish lowers the
// loading flag, again only for the latest run, so a stale completion cannot
// hide the spinner of a run still in flight.
type ViewState struct {
	mu sync.RWMutex

	latestToken uint64
	loading     bool
	committed   bool
	view        weather.Dashboard
}

// NewViewState creates an empty ViewState.
func NewViewState() *ViewState {
	return &ViewState{}
}

// Begin registers a new pipeline run and returns its token.
func (s *ViewState) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latestToken++
	s.loading = true
	return s.latestToken
}

// Commit atomically replaces the committed view if token is still current.
// Returns false when the result is stale and was discarded.
func (s *ViewState) Commit(token uint64, view weather.Dashboard) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.latestToken {
		return false
	}

	s.view = view
	s.committed = true
	return true
}

// Finish clears the loading flag for the latest run. Safe to call from stale
// runs; they are ignored.
func (s *ViewState) Finish(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == s.latestToken {
		s.loading = false
	}
}

// Latest returns the committed view, or ErrNotFound before the first commit.
func (s *ViewState) Latest() (weather.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.committed {
		return weather.Dashboard{}, ErrNotFound
	}
	return s.view, nil
}

// Loading reports whether the latest run is still in flight.
func (s *ViewState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
