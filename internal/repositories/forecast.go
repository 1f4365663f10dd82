package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

type OpenWeatherForecastRepository struct {
	client *OpenWeatherClient
	l      *logger.Logger
}

func NewOpenWeatherForecastRepository(client *OpenWeatherClient, l *logger.Logger) *OpenWeatherForecastRepository {
	return &OpenWeatherForecastRepository{
		client: client,
		l:      l,
	}
}

// OpenWeatherForecastResponse is the part of the 5 day / 3 hour forecast payload we read.
// Leaves are pointers so absent fields survive decoding as nil.
type OpenWeatherForecastResponse struct {
	List *[]OpenWeatherInterval `json:"list"`
}

type OpenWeatherInterval struct {
	Dt   *int64 `json:"dt"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Icon        *string `json:"icon"`
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

func (i OpenWeatherInterval) toSample() models.IntervalSample {
	sample := models.IntervalSample{Timestamp: i.Dt}

	if i.Main != nil {
		sample.TemperatureF = i.Main.Temp
		sample.HumidityPct = i.Main.Humidity
	}
	if i.Wind != nil {
		sample.WindSpeedMph = i.Wind.Speed
	}
	if len(i.Weather) > 0 {
		sample.ConditionCode = i.Weather[0].Icon
		sample.ConditionDescription = i.Weather[0].Description
	}

	return sample
}

// Fetch returns the provider's interval list for coordinates, in provider
// order, in imperial units (Fahrenheit, mph).
func (f *OpenWeatherForecastRepository) Fetch(ctx context.Context, coordinates models.Coordinates) ([]models.IntervalSample, error) {
	f.l.Info("making forecast API request", map[string]any{
		"params": coordinates.String(),
	})

	body, err := f.client.get(ctx, f.client.dataBaseURL+"/forecast", map[string]string{
		"lat":   strconv.FormatFloat(coordinates.Latitude, 'f', -1, 64),
		"lon":   strconv.FormatFloat(coordinates.Longitude, 'f', -1, 64),
		"units": "imperial",
	})
	if err != nil {
		return nil, fmt.Errorf("forecast %s: %w", coordinates, err)
	}

	var response OpenWeatherForecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("forecast %s: %w: failed to parse JSON response: %w", coordinates, models.ErrUpstream, err)
	}
	if response.List == nil {
		return nil, fmt.Errorf("forecast %s: %w: response has no interval list", coordinates, models.ErrUpstream)
	}

	f.l.Info("parsed forecast response", map[string]any{
		"params": coordinates.String(),
		"items":  len(*response.List),
	})

	samples := make([]models.IntervalSample, 0, len(*response.List))
	for _, item := range *response.List {
		samples = append(samples, item.toSample())
	}

	return samples, nil
}
