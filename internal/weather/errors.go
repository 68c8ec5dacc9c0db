package weather

import (
	"errors"
	"fmt"
)

// AuthError signals an invalid or missing provider credential (HTTP 401).
type AuthError struct {
	Body string
}

func (e *AuthError) Error() string {
	return "provider rejected the API key"
}

// NotFoundError signals that geocoding returned zero results for a query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no results for %q", e.Query)
}

// ProviderError signals any other non-success HTTP response from the provider,
// carrying the status code and raw body for diagnostics.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned HTTP %d: %s", e.Status, e.Body)
}

// NetworkError signals that a request could not complete at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage converts a pipeline error into the short human-readable text
// surfaced to the user. It never exposes raw provider bodies.
func UserMessage(err error) string {
	var authErr *AuthError
	var notFound *NotFoundError
	var provErr *ProviderError
	var netErr *NetworkError

	switch {
	case errors.As(err, &authErr):
		return "Invalid API key. Please check your OpenWeatherMap API key."
	case errors.As(err, &notFound):
		return "Location not found. Please try a different city name."
	case errors.As(err, &provErr):
		return fmt.Sprintf("Weather service error (HTTP %d). Please try again.", provErr.Status)
	case errors.As(err, &netErr):
		return "Failed to reach the weather service. Please try again."
	default:
		return "Failed to fetch weather data. Please try again."
	}
}
