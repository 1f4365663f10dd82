package models

// Weather is one rendered weather record. Current conditions and every daily
// forecast entry share this shape.
type Weather struct {
	City            string  `json:"city" example:"London"`
	Date            string  `json:"date" example:"10/18/2026"`
	Icon            string  `json:"icon" example:"04d"`
	IconDescription string  `json:"iconDescription" example:"broken clouds"`
	Condition       string  `json:"condition" example:"broken clouds"`
	TempF           int     `json:"tempF" example:"61"`
	WindSpeed       float64 `json:"windSpeed" example:"9.42"`
	Humidity        int     `json:"humidity" example:"72"`
}

type (
	CurrentConditions = Weather
	DailyForecast     = Weather
)

// WeatherReport is the result of a single city lookup.
type WeatherReport struct {
	CurrentWeather CurrentConditions `json:"currentWeather"`
	Forecast       []DailyForecast   `json:"forecast"`
}
