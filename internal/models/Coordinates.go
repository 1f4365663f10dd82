package models

import "fmt"

// Coordinates is a resolved geographic position.
type Coordinates struct {
	Latitude  float64 `json:"lat" example:"51.5073"`
	Longitude float64 `json:"lon" example:"-0.1276"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", c.Latitude, c.Longitude)
}
