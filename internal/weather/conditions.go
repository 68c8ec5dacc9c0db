package weather

import (
	"strings"

	"github.com/mkarlsen/skycast/internal/common"
)

// ConditionTag is a normalized high-level weather condition, decoupled from the
// provider's own taxonomy. The set is closed; every provider value maps to
// exactly one tag.
type ConditionTag string

const (
	ConditionSunny        ConditionTag = "sunny"
	ConditionCloudy       ConditionTag = "cloudy"
	ConditionPartlyCloudy ConditionTag = "partly-cloudy"
	ConditionRain         ConditionTag = "rain"
	ConditionSnow         ConditionTag = "snow"
)

// MapCondition translates a provider category ("Clear", "Clouds", ...) plus its
// free-text description into a ConditionTag. Total: unknown categories yield
// partly-cloudy. Snow is kept as its own tag rather than folded into rain.
func MapCondition(category, description string) ConditionTag {
	main := strings.ToLower(category)
	desc := strings.ToLower(description)

	switch main {
	case "clear":
		return ConditionSunny
	case "clouds":
		if common.HasAny(desc, "few", "scattered") {
			return ConditionPartlyCloudy
		}
		return ConditionCloudy
	case "rain", "drizzle":
		return ConditionRain
	case "snow":
		return ConditionSnow
	default:
		return ConditionPartlyCloudy
	}
}
