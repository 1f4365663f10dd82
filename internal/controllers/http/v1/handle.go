package http

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
)

var validate = validator.New()

// WeatherRequest is the body of a weather lookup
type WeatherRequest struct {
	CityName string `json:"cityName" validate:"required" example:"London"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"City name is required"`
}

// SuccessResponse acknowledges a delete
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// GetWeather godoc
// @Summary Look up weather for a city
// @Description Resolves the city, returns current conditions plus up to five daily forecasts and records the city in the search history
// @Tags Weather
// @Accept json
// @Produce json
// @Param request body WeatherRequest true "City to look up"
// @Success 200 {object} models.WeatherReport "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - missing city name"
// @Failure 404 {object} ErrorResponse "City not found"
// @Failure 502 {object} ErrorResponse "Weather provider failure"
// @Router /api/weather [post]
// @Example {curl} Example usage:
//
//	curl -X POST "http://localhost:3005/api/weather" -H "Content-Type: application/json" -d '{"cityName":"London"}'
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	var req WeatherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "City name is required")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), r.lookupTimeout)
	defer cancel()

	report, err := r.weather.GetWeatherForCity(ctx, req.CityName)
	if err != nil {
		return r.fail(err, map[string]any{"city": req.CityName})
	}

	if _, err := r.history.AddCity(ctx, req.CityName); err != nil {
		r.l.Warning("failed to save city to search history", map[string]any{
			"city": req.CityName,
			"err":  err.Error(),
		})
	}

	return c.JSON(report)
}

// GetHistory godoc
// @Summary List search history
// @Description Returns previously searched cities, oldest first
// @Tags History
// @Produce json
// @Success 200 {array} models.CityHistoryEntry "Successful response"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/weather/history [get]
func (r *routes) handleHistoryList(c *fiber.Ctx) error {
	cities, err := r.history.Cities(c.UserContext())
	if err != nil {
		return r.fail(err, nil)
	}
	return c.JSON(cities)
}

// DeleteHistory godoc
// @Summary Delete a city from search history
// @Description Removes a city from the search history
// @Tags History
// @Produce json
// @Param id path string true "History entry id"
// @Success 200 {object} SuccessResponse "Successful response"
// @Failure 404 {object} ErrorResponse "Unknown id"
// @Router /api/weather/history/{id} [delete]
func (r *routes) handleHistoryDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := r.history.RemoveCity(c.UserContext(), id); err != nil {
		return r.fail(err, map[string]any{"id": id})
	}
	return c.JSON(SuccessResponse{Success: true})
}

// fail maps err to a *fiber.Error for the app's error handler.
func (r *routes) fail(err error, fields map[string]any) error {
	status, message := statusFor(err)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["kind"] = models.ErrorKind(err)
	fields["status"] = status

	if status >= fiber.StatusInternalServerError {
		r.l.Error(err, fields)
	} else {
		fields["err"] = err.Error()
		r.l.Info("request rejected", fields)
	}

	return fiber.NewError(status, message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return fiber.StatusBadRequest, "City name is required"
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound, "City not found"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "Weather lookup timed out"
	case errors.Is(err, models.ErrUpstream):
		return fiber.StatusBadGateway, "Failed to fetch weather data"
	case errors.Is(err, models.ErrMalformedData):
		return fiber.StatusBadGateway, "Weather provider returned incomplete data"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
