package weather

import "context"

// Geocoder resolves place names to coordinates and back.
type Geocoder interface {
	// ResolveByName resolves a free-text place name to a Place.
	// Returns *NotFoundError when the provider has no match.
	ResolveByName(ctx context.Context, query string) (Place, error)

	// ResolveByCoordinates reverse-geocodes a lat/lon pair to a Place.
	ResolveByCoordinates(ctx context.Context, lat, lon float64) (Place, error)

	// Suggest returns up to a handful of candidate places whose names start
	// with the given prefix. Used by the typeahead path only.
	Suggest(ctx context.Context, prefix string) ([]Place, error)
}

// Provider retrieves weather data for a coordinate pair.
type Provider interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (CurrentObservation, error)
	FetchForecast(ctx context.Context, lat, lon float64) ([]ForecastSample, error)
}

// StateStore holds the committed dashboard view and the loading flag.
// Begin/Commit/Finish implement the monotonic request-token protocol: only the
// most recently begun run may commit or toggle the loading flag.
type StateStore interface {
	Begin() uint64
	Commit(token uint64, view Dashboard) bool
	Finish(token uint64)
	Latest() (Dashboard, error)
	Loading() bool
}
