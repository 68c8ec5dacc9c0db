package providers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/mkarlsen/skycast/internal/weather"
)

var errNoHTTPClient = errors.New("http client not configured")

// doRequest executes a single HTTP GET through the circuit breaker and maps
// the outcome onto the error taxonomy. No retries: a failed call aborts the
// caller's whole pipeline run.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, url string) ([]byte, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	result, err := cb.Execute(func() (interface{}, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if reqErr != nil {
			return nil, &weather.NetworkError{Err: reqErr}
		}

		resp, doErr := client.Do(req)
		if doErr != nil {
			return nil, &weather.NetworkError{Err: doErr}
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, &weather.NetworkError{Err: readErr}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &weather.AuthError{Body: string(body)}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &weather.ProviderError{Status: resp.StatusCode, Body: string(body)}
		}

		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.NetworkError{Err: err}
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, errors.New("unexpected result type from circuit breaker")
	}
	return body, nil
}
