package models

import (
	"strconv"
	"time"
)

// ActiveStay is the place currently occupied at one level and when the stay began.
type ActiveStay struct {
	Name      string    `json:"name"`
	StartedAt time.Time `json:"startedAt"`
}

// VisitRecord is a promoted stay. VisitedAt is the start of the stay, not the promotion time.
type VisitRecord struct {
	Level     Level     `json:"level"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Continent string    `json:"continent"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	VisitedAt time.Time `json:"visitedAt"`
}

func (v VisitRecord) PlaceName() string {
	switch v.Level {
	case LevelCity:
		return v.City
	case LevelCountry:
		return v.Country
	case LevelContinent:
		return v.Continent
	}
	return ""
}

// SamePlace reports whether both visits were promoted for the same place at the same level.
func (v VisitRecord) SamePlace(other VisitRecord) bool {
	return v.Level == other.Level && v.PlaceName() == other.PlaceName()
}

// ToLocationRecord converts a detected visit into an unsynced canonical record.
func (v VisitRecord) ToLocationRecord() LocationRecord {
	return LocationRecord{
		ID:        string(v.Level) + "-" + v.City + "-" + strconv.FormatInt(v.VisitedAt.UnixMilli(), 10),
		City:      v.City,
		Country:   v.Country,
		Continent: v.Continent,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		Date:      FormatDate(v.VisitedAt),
		IsSynced:  false,
	}
}
