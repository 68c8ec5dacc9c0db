package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mkarlsen/skycast/internal/store"
	"github.com/mkarlsen/skycast/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/search", func(c *fiber.Ctx) error {
		var req searchQuery
		req.Q = c.Query("q")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "q query parameter is required")
		}

		view, err := service.Search(c.Context(), req.Q)
		if err != nil {
			return fiber.NewError(statusForError(err), weather.UserMessage(err))
		}
		return c.JSON(view)
	})

	v1.Get("/search/coords", func(c *fiber.Ctx) error {
		var req coordsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		view, err := service.SearchByCoordinates(c.Context(), req.Lat, req.Lon)
		if err != nil {
			return fiber.NewError(statusForError(err), weather.UserMessage(err))
		}
		return c.JSON(view)
	})

	// Typeahead: always 200, failures degrade to an empty suggestion list.
	v1.Get("/suggest", func(c *fiber.Ctx) error {
		places := service.Suggest(c.Context(), c.Query("q"))
		suggestions := make([]string, 0, len(places))
		for _, p := range places {
			suggestions = append(suggestions, p.Label())
		}
		return c.JSON(fiber.Map{
			"suggestions": suggestions,
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		view, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data yet; run a search first")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read dashboard state")
		}
		return c.JSON(fiber.Map{
			"current":   view.Current,
			"forecast":  view.Forecast,
			"updatedAt": view.UpdatedAt,
			"loading":   service.Loading(),
		})
	})
}

// statusForError maps the pipeline error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	var authErr *weather.AuthError
	var notFound *weather.NotFoundError
	var provErr *weather.ProviderError
	var netErr *weather.NetworkError

	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &authErr):
		return fiber.StatusBadGateway
	case errors.As(err, &provErr):
		return fiber.StatusBadGateway
	case errors.As(err, &netErr):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// searchQuery holds the query parameter for the search endpoint.
type searchQuery struct {
	Q string `validate:"required,min=1"`
}

// coordsQuery holds query parameters for the reverse-geocoding search path.
type coordsQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func (q *coordsQuery) bind(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return errors.New("lat and lon query parameters are required")
	}

	var err error
	if q.Lat, err = parseFloat(latStr, "lat"); err != nil {
		return err
	}
	if q.Lon, err = parseFloat(lonStr, "lon"); err != nil {
		return err
	}

	return validate.Struct(q)
}

func parseFloat(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid " + name + " value")
	}
	return v, nil
}
