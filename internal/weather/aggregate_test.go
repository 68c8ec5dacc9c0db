package weather

import (
	"testing"
	"time"
)

func sampleAt(ts time.Time, temp float64, category, description string) ForecastSample {
	return ForecastSample{
		Timestamp:   ts,
		TempC:       temp,
		Category:    category,
		Description: description,
	}
}

func TestBuildDailyForecastFiveDays(t *testing.T) {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday

	var samples []ForecastSample
	for day := 0; day < 5; day++ {
		for hour := 0; hour < 24; hour += 3 {
			ts := base.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
			samples = append(samples, sampleAt(ts, 15+float64(day), "Clear", "clear sky"))
		}
	}

	forecast := BuildDailyForecast(samples)

	if len(forecast) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(forecast))
	}
	if forecast[0].Day != "Today" {
		t.Errorf("entry 0 labeled %q, want Today", forecast[0].Day)
	}
	for i, want := range []string{"Today", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		if forecast[i].Day != want {
			t.Errorf("entry %d labeled %q, want %q", i, forecast[i].Day, want)
		}
	}
}

func TestBuildDailyForecastHighLowRounding(t *testing.T) {
	base := time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)

	samples := []ForecastSample{
		sampleAt(base, 21.4, "Clear", "clear sky"),
		sampleAt(base.Add(3*time.Hour), 23.6, "Clear", "clear sky"),
		sampleAt(base.Add(6*time.Hour), 19.9, "Clear", "clear sky"),
	}

	forecast := BuildDailyForecast(samples)
	if len(forecast) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(forecast))
	}
	if forecast[0].High != 24 {
		t.Errorf("high = %d, want 24", forecast[0].High)
	}
	if forecast[0].Low != 20 {
		t.Errorf("low = %d, want 20", forecast[0].Low)
	}
}

func TestBuildDailyForecastFirstSampleCondition(t *testing.T) {
	base := time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)

	// Rain first, then a majority of clear samples: first sample wins.
	samples := []ForecastSample{
		sampleAt(base, 18, "Rain", "light rain"),
		sampleAt(base.Add(3*time.Hour), 20, "Clear", "clear sky"),
		sampleAt(base.Add(6*time.Hour), 21, "Clear", "clear sky"),
		sampleAt(base.Add(9*time.Hour), 22, "Clear", "clear sky"),
	}

	forecast := BuildDailyForecast(samples)
	if forecast[0].Condition != ConditionRain {
		t.Errorf("condition = %q, want %q", forecast[0].Condition, ConditionRain)
	}
}

func TestBuildDailyForecastSortsByDate(t *testing.T) {
	// Series starts late in the evening, so the first calendar day has a
	// single sample and later days carry more. The order must follow dates,
	// not map iteration.
	base := time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC)

	var samples []ForecastSample
	samples = append(samples, sampleAt(base, 10, "Clear", "clear sky"))
	for day := 1; day <= 3; day++ {
		for hour := 0; hour < 24; hour += 3 {
			ts := time.Date(2025, 6, 2+day, hour, 0, 0, 0, time.UTC)
			samples = append(samples, sampleAt(ts, 10+float64(day), "Clouds", "broken clouds"))
		}
	}

	forecast := BuildDailyForecast(samples)
	if len(forecast) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(forecast))
	}
	if forecast[0].Day != "Today" || forecast[0].High != 10 {
		t.Errorf("entry 0 = %+v, want the partial starting day first", forecast[0])
	}
	for i, want := range []int{10, 11, 12, 13} {
		if forecast[i].High != want {
			t.Errorf("entry %d high = %d, want %d", i, forecast[i].High, want)
		}
	}
}

func TestBuildDailyForecastFewerThanFiveDays(t *testing.T) {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	var samples []ForecastSample
	for day := 0; day < 2; day++ {
		ts := base.AddDate(0, 0, day)
		samples = append(samples, sampleAt(ts, 12, "Clear", "clear sky"))
	}

	forecast := BuildDailyForecast(samples)
	if len(forecast) != 2 {
		t.Errorf("expected 2 entries, got %d", len(forecast))
	}
}

func TestBuildDailyForecastEmpty(t *testing.T) {
	if got := BuildDailyForecast(nil); len(got) != 0 {
		t.Errorf("expected no entries for empty series, got %d", len(got))
	}
}

func TestBuildCurrentConditions(t *testing.T) {
	place := Place{Name: "London", Country: "GB", Lat: 51.5, Lon: -0.1}
	obs := CurrentObservation{
		Category:    "Clear",
		Description: "clear sky",
		TempC:       15.4,
		FeelsLikeC:  14.1,
		Humidity:    70,
		WindSpeedMS: 5.0,
		Sunrise:     1700000000,
		Sunset:      1700040000,
	}

	got := BuildCurrentConditions(place, obs)

	if got.Location != "London, GB" {
		t.Errorf("location = %q, want %q", got.Location, "London, GB")
	}
	if got.Temperature != 15 {
		t.Errorf("temperature = %d, want 15", got.Temperature)
	}
	if got.FeelsLike != 14 {
		t.Errorf("feelsLike = %d, want 14", got.FeelsLike)
	}
	if got.WindSpeed != 18 {
		t.Errorf("windSpeed = %d, want 18 (5.0 m/s as km/h)", got.WindSpeed)
	}
	if got.Condition != ConditionSunny {
		t.Errorf("condition = %q, want %q", got.Condition, ConditionSunny)
	}
	if got.Sunrise != 1700000000 || got.Sunset != 1700040000 {
		t.Errorf("sunrise/sunset = %d/%d, want passthrough", got.Sunrise, got.Sunset)
	}
}
