package weather_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services/weather"
)

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func ptr[T any](v T) *T { return &v }

func sampleAt(at time.Time, temp float64, desc string) models.IntervalSample {
	return models.IntervalSample{
		Timestamp:            ptr(at.Unix()),
		TemperatureF:         ptr(temp),
		HumidityPct:          ptr(55),
		WindSpeedMph:         ptr(4.6),
		ConditionCode:        ptr("01d"),
		ConditionDescription: ptr(desc),
	}
}

// threeHourSeries returns samples every three hours starting at start.
func threeHourSeries(start time.Time, count int) []models.IntervalSample {
	samples := make([]models.IntervalSample, 0, count)
	for i := 0; i < count; i++ {
		at := start.Add(time.Duration(i) * 3 * time.Hour)
		samples = append(samples, sampleAt(at, 60+float64(i)/10, "clear sky"))
	}
	return samples
}

func day(offset, hour, minute int) time.Time {
	return time.Date(2026, 10, 17+offset, hour, minute, 0, 0, time.UTC)
}

func TestReducer_EndToEndScenario(t *testing.T) {
	reducer := weather.NewReducer(time.UTC, fixedClock)

	report, err := reducer.Reduce("Boston", []models.IntervalSample{
		sampleAt(day(0, 9, 0), 58.4, "Fog"),
		sampleAt(day(1, 12, 0), 70, "Clear"),
		sampleAt(day(2, 12, 30), 65, "Rain"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.Weather{
		City:            "Boston",
		Date:            "10/17/2026",
		Icon:            "01d",
		IconDescription: "Fog",
		Condition:       "Fog",
		TempF:           58,
		WindSpeed:       4.6,
		Humidity:        55,
	}, report.CurrentWeather)

	require.Len(t, report.Forecast, 2)
	assert.Equal(t, "10/18/2026", report.Forecast[0].Date)
	assert.Equal(t, 70, report.Forecast[0].TempF)
	assert.Equal(t, "Clear", report.Forecast[0].IconDescription)
	assert.Equal(t, "10/19/2026", report.Forecast[1].Date)
	assert.Equal(t, 65, report.Forecast[1].TempF)
	assert.Equal(t, "Rain", report.Forecast[1].IconDescription)
}

func TestReducer_SingleSample(t *testing.T) {
	reducer := weather.NewReducer(time.UTC, fixedClock)

	report, err := reducer.Reduce("Boston", []models.IntervalSample{sampleAt(day(0, 9, 0), 61.5, "Clouds")})
	require.NoError(t, err)

	assert.Equal(t, 62, report.CurrentWeather.TempF)
	assert.NotNil(t, report.Forecast)
	assert.Empty(t, report.Forecast)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"forecast":[]`)
}

func TestReducer_FirstSampleInNoonWindowWins(t *testing.T) {
	reducer := weather.NewReducer(time.UTC, fixedClock)

	report, err := reducer.Reduce("Boston", []models.IntervalSample{
		sampleAt(day(0, 9, 0), 50, "now"),
		sampleAt(day(1, 11, 30), 71, "early"),
		sampleAt(day(1, 12, 45), 75, "late"),
	})
	require.NoError(t, err)

	require.Len(t, report.Forecast, 1)
	assert.Equal(t, 71, report.Forecast[0].TempF)
	assert.Equal(t, "early", report.Forecast[0].IconDescription)
}

func TestReducer_NoonWindowBounds(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		minute   int
		included bool
	}{
		{name: "before window", hour: 10, minute: 59},
		{name: "window start", hour: 11, minute: 0, included: true},
		{name: "noon", hour: 12, minute: 0, included: true},
		{name: "last window hour", hour: 13, minute: 59, included: true},
		{name: "after window", hour: 14, minute: 0},
		{name: "midnight", hour: 0, minute: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reducer := weather.NewReducer(time.UTC, fixedClock)

			report, err := reducer.Reduce("Boston", []models.IntervalSample{
				sampleAt(day(0, 9, 0), 50, "now"),
				sampleAt(day(1, tt.hour, tt.minute), 70, "candidate"),
			})
			require.NoError(t, err)

			if tt.included {
				assert.Len(t, report.Forecast, 1)
			} else {
				assert.Empty(t, report.Forecast)
			}
		})
	}
}

func TestReducer_TodayIsNeverForecast(t *testing.T) {
	reducer := weather.NewReducer(time.UTC, fixedClock)

	report, err := reducer.Reduce("Boston", []models.IntervalSample{
		sampleAt(day(0, 9, 0), 50, "now"),
		sampleAt(day(0, 12, 0), 55, "today noon"),
		sampleAt(day(1, 12, 0), 60, "tomorrow noon"),
	})
	require.NoError(t, err)

	require.Len(t, report.Forecast, 1)
	assert.Equal(t, "10/18/2026", report.Forecast[0].Date)
}

func TestReducer_DaysWithoutNoonSampleAreSkipped(t *testing.T) {
	reducer := weather.NewReducer(time.UTC, fixedClock)

	report, err := reducer.Reduce("Boston", []models.IntervalSample{
		sampleAt(day(0, 9, 0), 50, "now"),
		sampleAt(day(1, 9, 0), 60, "tomorrow morning"),
		sampleAt(day(1, 15, 0), 61, "tomorrow afternoon"),
		sampleAt(day(2, 12, 0), 62, "day after noon"),
	})
	require.NoError(t, err)

	require.Len(t, report.Forecast, 1)
	assert.Equal(t, "10/19/2026", report.Forecast[0].Date)
	assert.Equal(t, 62, report.Forecast[0].TempF)
}

func TestReducer_FiveDayForecastInvariants(t *testing.T) {
	reducer := weather.NewReducer(time.UTC, fixedClock)

	// Seven days of provider data starting today at 00:00.
	report, err := reducer.Reduce("Boston", threeHourSeries(day(0, 0, 0), 56))
	require.NoError(t, err)

	require.Len(t, report.Forecast, 5)

	today := testNow.Format(weather.DateLabelLayout)
	seen := make(map[string]bool)
	for i, entry := range report.Forecast {
		assert.NotEqual(t, today, entry.Date)
		assert.False(t, seen[entry.Date], "duplicate date %s", entry.Date)
		seen[entry.Date] = true
		assert.Equal(t, day(i+1, 0, 0).Format(weather.DateLabelLayout), entry.Date)
		assert.Equal(t, "Boston", entry.City)
	}
}

func TestReducer_IsDeterministic(t *testing.T) {
	reducer := weather.NewReducer(time.UTC, fixedClock)
	samples := threeHourSeries(day(0, 6, 0), 40)

	first, err := reducer.Reduce("Boston", samples)
	require.NoError(t, err)
	second, err := reducer.Reduce("Boston", samples)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestReducer_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		temp float64
		want int
	}{
		{temp: 72.5, want: 73},
		{temp: 72.49, want: 72},
		{temp: -0.5, want: -1},
		{temp: -3.4, want: -3},
		{temp: 0, want: 0},
	}

	reducer := weather.NewReducer(time.UTC, fixedClock)
	for _, tt := range tests {
		report, err := reducer.Reduce("Boston", []models.IntervalSample{sampleAt(day(0, 9, 0), tt.temp, "x")})
		require.NoError(t, err)
		assert.Equal(t, tt.want, report.CurrentWeather.TempF, "temp %v", tt.temp)
	}
}

func TestReducer_UsesConfiguredZone(t *testing.T) {
	// 18:00 UTC is 11:00 at UTC-7.
	pacific := time.FixedZone("UTC-7", -7*60*60)
	samples := []models.IntervalSample{
		sampleAt(day(0, 15, 0), 50, "now"),
		sampleAt(day(1, 18, 0), 64, "local noon"),
	}

	inUTC, err := weather.NewReducer(time.UTC, fixedClock).Reduce("Portland", samples)
	require.NoError(t, err)
	assert.Empty(t, inUTC.Forecast)

	inPacific, err := weather.NewReducer(pacific, fixedClock).Reduce("Portland", samples)
	require.NoError(t, err)
	require.Len(t, inPacific.Forecast, 1)
	assert.Equal(t, "10/18/2026", inPacific.Forecast[0].Date)
	assert.Equal(t, "10/17/2026", inPacific.CurrentWeather.Date)
}

func TestReducer_MissingIconRendersEmpty(t *testing.T) {
	reducer := weather.NewReducer(time.UTC, fixedClock)

	sample := sampleAt(day(0, 9, 0), 50, "haze")
	sample.ConditionCode = nil

	report, err := reducer.Reduce("Boston", []models.IntervalSample{sample})
	require.NoError(t, err)
	assert.Equal(t, "", report.CurrentWeather.Icon)
}

func TestReducer_MalformedData(t *testing.T) {
	valid := func() models.IntervalSample { return sampleAt(day(1, 12, 0), 50, "clear") }

	tests := []struct {
		name    string
		samples []models.IntervalSample
	}{
		{name: "empty", samples: nil},
		{name: "missing timestamp", samples: []models.IntervalSample{func() models.IntervalSample { s := valid(); s.Timestamp = nil; return s }()}},
		{name: "missing temperature", samples: []models.IntervalSample{func() models.IntervalSample { s := valid(); s.TemperatureF = nil; return s }()}},
		{name: "missing humidity", samples: []models.IntervalSample{func() models.IntervalSample { s := valid(); s.HumidityPct = nil; return s }()}},
		{name: "missing wind", samples: []models.IntervalSample{func() models.IntervalSample { s := valid(); s.WindSpeedMph = nil; return s }()}},
		{name: "missing description", samples: []models.IntervalSample{valid(), func() models.IntervalSample { s := valid(); s.ConditionDescription = nil; return s }()}},
		{name: "out of order", samples: []models.IntervalSample{sampleAt(day(1, 12, 0), 50, "a"), sampleAt(day(0, 12, 0), 50, "b")}},
	}

	reducer := weather.NewReducer(time.UTC, fixedClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reducer.Reduce("Boston", tt.samples)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrMalformedData)
		})
	}
}
