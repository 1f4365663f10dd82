package weather

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
)

const (
	// DateLabelLayout renders dates as month/day/year without padding.
	DateLabelLayout = "1/2/2006"

	maxForecastDays = 5
	noonWindowStart = 11
	noonWindowEnd   = 13
)

// Reducer turns the provider's interval series into current conditions and a
// daily forecast. Dates and hours are read in a single time zone.
type Reducer struct {
	loc *time.Location
	now func() time.Time
}

// NewReducer returns a Reducer for loc. A nil loc means time.Local and a nil
// now means time.Now.
func NewReducer(loc *time.Location, now func() time.Time) *Reducer {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Reducer{loc: loc, now: now}
}

type reading struct {
	at          time.Time
	temperature float64
	humidity    int
	windSpeed   float64
	icon        string
	description string
}

// Reduce builds a report for cityName. The first sample becomes the current
// conditions. The forecast holds at most five later days, each represented by
// its first sample between 11:00 and 13:59 local time; days without such a
// sample are left out.
func (r *Reducer) Reduce(cityName string, samples []models.IntervalSample) (models.WeatherReport, error) {
	readings, err := r.readings(samples)
	if err != nil {
		return models.WeatherReport{}, err
	}

	today := r.now().In(r.loc).Format(DateLabelLayout)

	report := models.WeatherReport{
		CurrentWeather: r.render(cityName, readings[0]),
		Forecast:       make([]models.DailyForecast, 0, maxForecastDays),
	}

	seen := make(map[string]struct{}, maxForecastDays)
	for _, rd := range readings {
		if len(report.Forecast) == maxForecastDays {
			break
		}

		date := rd.at.Format(DateLabelLayout)
		if date == today {
			continue
		}
		if hour := rd.at.Hour(); hour < noonWindowStart || hour > noonWindowEnd {
			continue
		}
		if _, ok := seen[date]; ok {
			continue
		}

		seen[date] = struct{}{}
		report.Forecast = append(report.Forecast, r.render(cityName, rd))
	}

	return report, nil
}

// readings validates samples and converts them to local time.
func (r *Reducer) readings(samples []models.IntervalSample) ([]reading, error) {
	if len(samples) == 0 {
		return nil, errors.Wrap(models.ErrMalformedData, "forecast has no interval samples")
	}

	readings := make([]reading, 0, len(samples))
	for i, s := range samples {
		switch {
		case s.Timestamp == nil:
			return nil, errors.Wrapf(models.ErrMalformedData, "sample %d has no timestamp", i)
		case s.TemperatureF == nil:
			return nil, errors.Wrapf(models.ErrMalformedData, "sample %d has no temperature", i)
		case s.HumidityPct == nil:
			return nil, errors.Wrapf(models.ErrMalformedData, "sample %d has no humidity", i)
		case s.WindSpeedMph == nil:
			return nil, errors.Wrapf(models.ErrMalformedData, "sample %d has no wind speed", i)
		case s.ConditionDescription == nil:
			return nil, errors.Wrapf(models.ErrMalformedData, "sample %d has no condition description", i)
		}

		if i > 0 && *s.Timestamp < *samples[i-1].Timestamp {
			return nil, errors.Wrapf(models.ErrMalformedData, "sample %d is out of chronological order", i)
		}

		rd := reading{
			at:          time.Unix(*s.Timestamp, 0).In(r.loc),
			temperature: *s.TemperatureF,
			humidity:    *s.HumidityPct,
			windSpeed:   *s.WindSpeedMph,
			description: *s.ConditionDescription,
		}
		if s.ConditionCode != nil {
			rd.icon = *s.ConditionCode
		}

		readings = append(readings, rd)
	}

	return readings, nil
}

func (r *Reducer) render(cityName string, rd reading) models.Weather {
	return models.Weather{
		City:            cityName,
		Date:            rd.at.Format(DateLabelLayout),
		Icon:            rd.icon,
		IconDescription: rd.description,
		Condition:       rd.description,
		TempF:           int(math.Round(rd.temperature)),
		WindSpeed:       rd.windSpeed,
		Humidity:        rd.humidity,
	}
}
