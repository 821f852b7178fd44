package models

import "time"

// UnknownPlace replaces a city or country name the geocoder could not provide.
const UnknownPlace = "Unknown"

// LocationSnapshot is a single geolocation fix with its reverse geocoded place names.
type LocationSnapshot struct {
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Continent string    `json:"continent"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// PlaceName returns the name of the place the snapshot lies in at the given level.
func (s LocationSnapshot) PlaceName(level Level) string {
	switch level {
	case LevelCity:
		return s.City
	case LevelCountry:
		return s.Country
	case LevelContinent:
		return s.Continent
	}
	return ""
}
