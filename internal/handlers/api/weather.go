package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"terminaltime/internal/config"
	"terminaltime/internal/validation"
	"terminaltime/internal/weather"
)

// WeatherHandler proxies current weather for the dashboard.
type WeatherHandler struct {
	client *weather.Client
	cities []config.CityConfig
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(client *weather.Client, cities []config.CityConfig) *WeatherHandler {
	if len(cities) == 0 {
		cities = config.DefaultCities()
	}
	return &WeatherHandler{client: client, cities: cities}
}

// Current returns current weather for the requested coordinates. Upstream
// failures degrade to randomized plausible data instead of an error screen.
func (h *WeatherHandler) Current(c fiber.Ctx) error {
	lat, lon, err := validation.ParseCoordinates(c.Query("lat"), c.Query("lon"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.client.Current(c.Context(), lat, lon)
	if err != nil {
		slog.Warn("weather fetch failed, serving fallback", "lat", lat, "lon", lon, "error", err)
		return c.JSON(weather.Fallback(""))
	}

	return c.JSON(report)
}

// Cities returns the selectable city list for the dashboard dropdown.
func (h *WeatherHandler) Cities(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"cities": h.cities})
}
