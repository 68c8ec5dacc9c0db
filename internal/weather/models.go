package weather

import (
	"fmt"
	"time"
)

// Place is the result of a geocoding lookup. Produced per search, never persisted.
type Place struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Label returns the display label for the place, e.g. "London, GB".
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return fmt.Sprintf("%s, %s", p.Name, p.Country)
}

// CurrentConditions is the UI-ready snapshot of current weather.
// Temperatures are whole-degree Celsius (rounded), wind is km/h (rounded).
type CurrentConditions struct {
	Location    string       `json:"location"`
	Temperature int          `json:"temperature"`
	FeelsLike   int          `json:"feelsLike"`
	Humidity    int          `json:"humidity"`
	WindSpeed   int          `json:"windSpeed"`
	Condition   ConditionTag `json:"condition"`

	// Sunrise/Sunset are unix seconds; zero when the provider omits them.
	Sunrise int64 `json:"sunrise,omitempty"`
	Sunset  int64 `json:"sunset,omitempty"`
}

// DayForecast is one entry of the daily forecast strip.
type DayForecast struct {
	Day       string       `json:"day"`
	High      int          `json:"high"`
	Low       int          `json:"low"`
	Condition ConditionTag `json:"condition"`
}

// Dashboard is the committed view-model consumed by the presentation layer.
// Both pieces are replaced together on a successful search.
type Dashboard struct {
	Current   CurrentConditions `json:"current"`
	Forecast  []DayForecast     `json:"forecast"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CurrentObservation is a provider-neutral current-conditions reading,
// still in the provider's native units (Celsius, m/s).
type CurrentObservation struct {
	Category    string
	Description string
	TempC       float64
	FeelsLikeC  float64
	Humidity    int
	WindSpeedMS float64
	Sunrise     int64
	Sunset      int64
}

// ForecastSample is one timestamped point of the multi-point forecast series,
// typically a 3-hour step.
type ForecastSample struct {
	Timestamp   time.Time
	TempC       float64
	Category    string
	Description string
}
