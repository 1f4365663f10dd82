package models

// IntervalSample is a single point of the provider's 3-hour forecast series.
// Nil fields were absent from the provider payload.
type IntervalSample struct {
	Timestamp            *int64
	TemperatureF         *float64
	HumidityPct          *int
	WindSpeedMph         *float64
	ConditionCode        *string
	ConditionDescription *string
}
