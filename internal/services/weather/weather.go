package weather

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

// WeatherService looks up the weather for a city name. It holds no per-call
// state and is safe for concurrent use.
type WeatherService struct {
	geocoder  repositories.GeocodeRepository
	forecasts repositories.ForecastRepository
	reducer   *Reducer
	l         *logger.Logger
}

func NewWeatherService(geocoder repositories.GeocodeRepository, forecasts repositories.ForecastRepository, reducer *Reducer, l *logger.Logger) *WeatherService {
	if reducer == nil {
		reducer = NewReducer(nil, nil)
	}
	return &WeatherService{
		geocoder:  geocoder,
		forecasts: forecasts,
		reducer:   reducer,
		l:         l,
	}
}

// GetWeatherForCity resolves cityName, fetches its forecast series and reduces
// it. Errors from every step are returned as is.
func (s *WeatherService) GetWeatherForCity(ctx context.Context, cityName string) (models.WeatherReport, error) {
	name := strings.TrimSpace(cityName)
	if name == "" {
		return models.WeatherReport{}, errors.Wrap(models.ErrInvalidInput, "city name is required")
	}

	s.l.Info("starting weather lookup", map[string]any{"city": name})

	coordinates, err := s.geocoder.Resolve(ctx, name)
	if err != nil {
		s.l.Warning("failed to resolve city", map[string]any{"city": name, "kind": models.ErrorKind(err), "err": err.Error()})
		return models.WeatherReport{}, err
	}

	samples, err := s.forecasts.Fetch(ctx, coordinates)
	if err != nil {
		s.l.Warning("failed to fetch forecast", map[string]any{
			"city":        name,
			"coordinates": coordinates.String(),
			"kind":        models.ErrorKind(err),
			"err":         err.Error(),
		})
		return models.WeatherReport{}, err
	}

	report, err := s.reducer.Reduce(name, samples)
	if err != nil {
		s.l.Warning("failed to reduce forecast", map[string]any{
			"city":    name,
			"samples": len(samples),
			"kind":    models.ErrorKind(err),
			"err":     err.Error(),
		})
		return models.WeatherReport{}, err
	}

	s.l.Info("completed weather lookup", map[string]any{
		"city":         name,
		"coordinates":  coordinates.String(),
		"samples":      len(samples),
		"forecastDays": len(report.Forecast),
	})

	return report, nil
}
