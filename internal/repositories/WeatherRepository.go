package repositories

import (
	"context"
	"net/http"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

// GeocodeRepository resolves a city name to coordinates.
type GeocodeRepository interface {
	Resolve(ctx context.Context, cityName string) (models.Coordinates, error)
}

// ForecastRepository fetches the raw interval series for a position.
type ForecastRepository interface {
	Fetch(ctx context.Context, coordinates models.Coordinates) ([]models.IntervalSample, error)
}

// HistoryRepository persists previously searched cities.
type HistoryRepository interface {
	List(ctx context.Context) ([]models.CityHistoryEntry, error)
	Add(ctx context.Context, name string) (models.CityHistoryEntry, error)
	Remove(ctx context.Context, id string) error
}

// InitWeatherRepositories builds the OpenWeather-backed geocoding and forecast repositories.
func InitWeatherRepositories(cfg *config.Config, httpClient *http.Client, l *logger.Logger) (GeocodeRepository, ForecastRepository, error) {
	client, err := NewOpenWeatherClient(OpenWeatherOptions{
		APIKey:             cfg.OpenWeather.APIKey,
		GeoBaseURL:         cfg.OpenWeather.GeoBaseURL,
		DataBaseURL:        cfg.OpenWeather.DataBaseURL,
		Timeout:            cfg.OpenWeather.Timeout,
		RateLimit:          cfg.OpenWeather.RateLimit,
		RateBurst:          cfg.OpenWeather.RateBurst,
		BreakerMaxFailures: cfg.OpenWeather.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.OpenWeather.BreakerOpenTimeout,
	}, httpClient, l)
	if err != nil {
		return nil, nil, err
	}

	return NewOpenWeatherGeocodeRepository(client, l), NewOpenWeatherForecastRepository(client, l), nil
}

var (
	_ GeocodeRepository  = (*OpenWeatherGeocodeRepository)(nil)
	_ ForecastRepository = (*OpenWeatherForecastRepository)(nil)
	_ HistoryRepository  = (*FileHistoryRepository)(nil)
)
