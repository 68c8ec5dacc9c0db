package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mkarlsen/skycast/internal/weather"
)

const suggestLimit = 5

// OpenWeatherClient talks to the OpenWeatherMap geocoding and weather
// endpoints. It implements weather.Geocoder and weather.Provider. The API key
// is injected at construction; nothing is read from ambient globals.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherClient creates a client against api.openweathermap.org.
func NewOpenWeatherClient(client *http.Client, apiKey string) *OpenWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		client:  client,
		circuit: cb,
	}
}

type geoResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (r geoResult) toPlace() weather.Place {
	return weather.Place{
		Name:    r.Name,
		Country: r.Country,
		Lat:     r.Lat,
		Lon:     r.Lon,
	}
}

// ResolveByName resolves a free-text place name via the direct geocoding
// endpoint with limit 1. An empty result set yields *weather.NotFoundError.
func (c *OpenWeatherClient) ResolveByName(ctx context.Context, query string) (weather.Place, error) {
	results, err := c.geocodeDirect(ctx, query, 1)
	if err != nil {
		return weather.Place{}, err
	}
	if len(results) == 0 {
		return weather.Place{}, &weather.NotFoundError{Query: query}
	}
	return results[0].toPlace(), nil
}

// ResolveByCoordinates reverse-geocodes a lat/lon pair with limit 1.
func (c *OpenWeatherClient) ResolveByCoordinates(ctx context.Context, lat, lon float64) (weather.Place, error) {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("limit", "1")
	values.Set("appid", c.apiKey)

	body, err := doRequest(ctx, c.client, c.circuit, c.baseURL+"/geo/1.0/reverse?"+values.Encode())
	if err != nil {
		return weather.Place{}, err
	}

	var results []geoResult
	if err := json.Unmarshal(body, &results); err != nil {
		return weather.Place{}, &weather.NetworkError{Err: err}
	}
	if len(results) == 0 {
		return weather.Place{}, &weather.NotFoundError{Query: fmt.Sprintf("%s,%s", formatCoord(lat), formatCoord(lon))}
	}
	return results[0].toPlace(), nil
}

// Suggest queries the direct geocoding endpoint with the typeahead limit.
// Prefix filtering happens in the orchestrator; this just returns candidates.
func (c *OpenWeatherClient) Suggest(ctx context.Context, prefix string) ([]weather.Place, error) {
	results, err := c.geocodeDirect(ctx, prefix, suggestLimit)
	if err != nil {
		return nil, err
	}

	places := make([]weather.Place, 0, len(results))
	for _, r := range results {
		places = append(places, r.toPlace())
	}
	return places, nil
}

func (c *OpenWeatherClient) geocodeDirect(ctx context.Context, query string, limit int) ([]geoResult, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("appid", c.apiKey)

	body, err := doRequest(ctx, c.client, c.circuit, c.baseURL+"/geo/1.0/direct?"+values.Encode())
	if err != nil {
		return nil, err
	}

	var results []geoResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &weather.NetworkError{Err: err}
	}
	return results, nil
}

// FetchCurrent retrieves the current-conditions snapshot in metric units.
func (c *OpenWeatherClient) FetchCurrent(ctx context.Context, lat, lon float64) (weather.CurrentObservation, error) {
	body, err := doRequest(ctx, c.client, c.circuit, c.coordURL("/data/2.5/weather", lat, lon))
	if err != nil {
		return weather.CurrentObservation{}, err
	}

	var payload struct {
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Sys struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"sys"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.CurrentObservation{}, &weather.NetworkError{Err: err}
	}

	obs := weather.CurrentObservation{
		TempC:       payload.Main.Temp,
		FeelsLikeC:  payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeedMS: payload.Wind.Speed,
		Sunrise:     payload.Sys.Sunrise,
		Sunset:      payload.Sys.Sunset,
	}
	if len(payload.Weather) > 0 {
		obs.Category = payload.Weather[0].Main
		obs.Description = payload.Weather[0].Description
	}
	return obs, nil
}

// FetchForecast retrieves the 5-day/3-hour forecast series in metric units.
func (c *OpenWeatherClient) FetchForecast(ctx context.Context, lat, lon float64) ([]weather.ForecastSample, error) {
	body, err := doRequest(ctx, c.client, c.circuit, c.coordURL("/data/2.5/forecast", lat, lon))
	if err != nil {
		return nil, err
	}

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &weather.NetworkError{Err: err}
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		sample := weather.ForecastSample{
			Timestamp: time.Unix(item.Dt, 0),
			TempC:     item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			sample.Category = item.Weather[0].Main
			sample.Description = item.Weather[0].Description
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (c *OpenWeatherClient) coordURL(path string, lat, lon float64) string {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("units", "metric")
	values.Set("appid", c.apiKey)
	return c.baseURL + path + "?" + values.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
