package weather

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service orchestrates the search pipeline: geocode, fetch current conditions
// and forecast, normalize, and commit the result as one atomic dashboard
// update. A monotonic request token (issued by the StateStore) guards against
// a slow run overwriting the result of a newer one: stale completions are
// discarded silently.
type Service struct {
	geocoder Geocoder
	provider Provider
	state    StateStore

	mu        sync.Mutex
	lastQuery string
}

// NewService creates a new Service.
func NewService(geocoder Geocoder, provider Provider, state StateStore) *Service {
	return &Service{
		geocoder: geocoder,
		provider: provider,
		state:    state,
	}
}

// Search runs the full pipeline for a free-text place name and returns the
// dashboard view it computed. On any failure the previously committed state is
// left untouched and the loading flag is cleared.
func (s *Service) Search(ctx context.Context, query string) (Dashboard, error) {
	runID := uuid.NewString()
	token := s.state.Begin()
	defer s.state.Finish(token)

	log.Printf("DEBUG: search %s started for %q", runID, query)

	place, err := s.geocoder.ResolveByName(ctx, query)
	if err != nil {
		log.Printf("search %s: geocoding failed for %q: %v", runID, query, err)
		return Dashboard{}, err
	}

	view, err := s.fetchAndBuild(ctx, runID, place)
	if err != nil {
		return Dashboard{}, err
	}

	if !s.state.Commit(token, view) {
		// A newer search has started; this result must not win.
		log.Printf("search %s: discarding stale result for %q", runID, query)
		return view, nil
	}

	s.mu.Lock()
	s.lastQuery = query
	s.mu.Unlock()

	log.Printf("DEBUG: search %s committed for %s", runID, view.Current.Location)
	return view, nil
}

// SearchByCoordinates reverse-geocodes the coordinates and then runs the
// normal search with the resolved place name. Used by the geolocation path.
func (s *Service) SearchByCoordinates(ctx context.Context, lat, lon float64) (Dashboard, error) {
	place, err := s.geocoder.ResolveByCoordinates(ctx, lat, lon)
	if err != nil {
		return Dashboard{}, err
	}
	return s.Search(ctx, place.Name)
}

// Suggest returns typeahead candidates whose names start with the typed
// prefix, case-insensitively. Transient failures degrade to an empty list and
// are never surfaced to the caller.
func (s *Service) Suggest(ctx context.Context, prefix string) []Place {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}

	places, err := s.geocoder.Suggest(ctx, prefix)
	if err != nil {
		log.Printf("suggest failed for %q: %v", prefix, err)
		return nil
	}

	lower := strings.ToLower(prefix)
	matches := make([]Place, 0, len(places))
	for _, p := range places {
		if strings.HasPrefix(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Bootstrap runs the initial search at startup. When startup coordinates are
// configured it reverse-geocodes them and searches by the resolved name; any
// failure on that path falls back to the fixed default location. This is the
// single fallback policy for the initial load.
func (s *Service) Bootstrap(ctx context.Context, lat, lon *float64, defaultLocation string) error {
	if lat != nil && lon != nil {
		_, err := s.SearchByCoordinates(ctx, *lat, *lon)
		if err == nil {
			return nil
		}
		log.Printf("bootstrap: geolocation path failed, falling back to %q: %v", defaultLocation, err)
	}

	_, err := s.Search(ctx, defaultLocation)
	return err
}

// Latest returns the most recently committed dashboard view.
func (s *Service) Latest() (Dashboard, error) {
	return s.state.Latest()
}

// Loading reports whether a search run is currently in flight.
func (s *Service) Loading() bool {
	return s.state.Loading()
}

// LastQuery returns the query of the last committed search, if any.
func (s *Service) LastQuery() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery, s.lastQuery != ""
}

// fetchAndBuild retrieves current conditions and the forecast series for a
// resolved place and reduces them to the dashboard view. The two fetches run
// concurrently; the first error aborts the run.
func (s *Service) fetchAndBuild(ctx context.Context, runID string, place Place) (Dashboard, error) {
	var (
		wg         sync.WaitGroup
		obs        CurrentObservation
		samples    []ForecastSample
		currentErr error
		fcErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		obs, currentErr = s.provider.FetchCurrent(ctx, place.Lat, place.Lon)
	}()
	go func() {
		defer wg.Done()
		samples, fcErr = s.provider.FetchForecast(ctx, place.Lat, place.Lon)
	}()
	wg.Wait()

	if currentErr != nil {
		log.Printf("search %s: current-conditions fetch failed for %s: %v", runID, place.Label(), currentErr)
		return Dashboard{}, currentErr
	}
	if fcErr != nil {
		log.Printf("search %s: forecast fetch failed for %s: %v", runID, place.Label(), fcErr)
		return Dashboard{}, fcErr
	}

	return Dashboard{
		Current:   BuildCurrentConditions(place, obs),
		Forecast:  BuildDailyForecast(samples),
		UpdatedAt: time.Now().UTC(),
	}, nil
}
