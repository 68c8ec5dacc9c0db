package weather

import (
	"math"
	"sort"
)

// MaxForecastDays caps the daily forecast strip.
const MaxForecastDays = 5

type dayBucket struct {
	temps     []int
	condition ConditionTag
	weekday   string
}

// BuildDailyForecast buckets a 3-hourly forecast series by calendar day and
// reduces each day to a high/low plus one condition tag.
//
// Samples are keyed by their local calendar date, so a series starting mid-day
// still sorts correctly. Each sample temperature is rounded first, then the
// day's extremes are taken. The condition for a day is the tag of the first
// sample seen for that day; no majority vote. The first entry is always
// labeled "Today" regardless of its weekday. Fewer than MaxForecastDays
// distinct days yields a shorter slice, never padding.
func BuildDailyForecast(samples []ForecastSample) []DayForecast {
	buckets := make(map[string]*dayBucket)

	for _, s := range samples {
		key := s.Timestamp.Format("2006-01-02")
		temp := int(math.Round(s.TempC))

		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{
				condition: MapCondition(s.Category, s.Description),
				weekday:   s.Timestamp.Weekday().String(),
			}
			buckets[key] = b
		}
		b.temps = append(b.temps, temp)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	forecast := make([]DayForecast, 0, MaxForecastDays)
	for _, k := range keys {
		if len(forecast) >= MaxForecastDays {
			break
		}

		b := buckets[k]
		high, low := b.temps[0], b.temps[0]
		for _, t := range b.temps[1:] {
			if t > high {
				high = t
			}
			if t < low {
				low = t
			}
		}

		day := b.weekday
		if len(forecast) == 0 {
			day = "Today"
		}

		forecast = append(forecast, DayForecast{
			Day:       day,
			High:      high,
			Low:       low,
			Condition: b.condition,
		})
	}

	return forecast
}

// BuildCurrentConditions converts a raw observation for a place into the
// UI-ready snapshot. Temperatures are rounded to whole Celsius; wind speed is
// converted from the provider's m/s to km/h and rounded, so 5.0 m/s displays
// as 18 km/h.
func BuildCurrentConditions(place Place, obs CurrentObservation) CurrentConditions {
	return CurrentConditions{
		Location:    place.Label(),
		Temperature: int(math.Round(obs.TempC)),
		FeelsLike:   int(math.Round(obs.FeelsLikeC)),
		Humidity:    obs.Humidity,
		WindSpeed:   int(math.Round(obs.WindSpeedMS * 3.6)),
		Condition:   MapCondition(obs.Category, obs.Description),
		Sunrise:     obs.Sunrise,
		Sunset:      obs.Sunset,
	}
}
