package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

// geocodeCandidateLimit is how many matches the direct geocoding endpoint may return.
const geocodeCandidateLimit = 5

type OpenWeatherGeocodeRepository struct {
	client *OpenWeatherClient
	l      *logger.Logger
}

func NewOpenWeatherGeocodeRepository(client *OpenWeatherClient, l *logger.Logger) *OpenWeatherGeocodeRepository {
	return &OpenWeatherGeocodeRepository{
		client: client,
		l:      l,
	}
}

type geocodeCandidate struct {
	Name    string   `json:"name"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Country string   `json:"country"`
	State   string   `json:"state"`
}

// Resolve returns the coordinates of the first candidate OpenWeather reports
// for cityName. No disambiguation is attempted.
func (g *OpenWeatherGeocodeRepository) Resolve(ctx context.Context, cityName string) (models.Coordinates, error) {
	name := strings.TrimSpace(cityName)
	if name == "" {
		return models.Coordinates{}, errors.Wrap(models.ErrInvalidInput, "city name is required")
	}

	g.l.Info("making geocoding API request", map[string]any{
		"city":  name,
		"limit": geocodeCandidateLimit,
	})

	body, err := g.client.get(ctx, g.client.geoBaseURL+"/direct", map[string]string{
		"q":     name,
		"limit": strconv.Itoa(geocodeCandidateLimit),
	})
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w", name, err)
	}

	var candidates []geocodeCandidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w: failed to parse JSON response: %w", name, models.ErrUpstream, err)
	}
	if candidates == nil {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w: response is not a candidate list", name, models.ErrUpstream)
	}

	g.l.Info("parsed geocoding response", map[string]any{
		"city":       name,
		"candidates": len(candidates),
	})

	if len(candidates) == 0 {
		return models.Coordinates{}, errors.Wrapf(models.ErrNotFound, "no location found for %q", name)
	}

	first := candidates[0]
	if first.Lat == nil || first.Lon == nil {
		return models.Coordinates{}, fmt.Errorf("geocode %q: %w: candidate is missing coordinates", name, models.ErrUpstream)
	}

	coordinates := models.Coordinates{
		Latitude:  *first.Lat,
		Longitude: *first.Lon,
	}

	g.l.Debug("resolved city", map[string]any{
		"city":        name,
		"match":       first.Name,
		"country":     first.Country,
		"state":       first.State,
		"coordinates": coordinates.String(),
	})

	return coordinates, nil
}
