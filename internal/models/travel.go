package models

// Coordinates is a plain latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TravelLeg connects two consecutive records of the date-ordered history.
// DistanceKm is rounded for display; totals are accumulated from unrounded values.
type TravelLeg struct {
	From       LocationRecord `json:"from"`
	To         LocationRecord `json:"to"`
	DistanceKm int            `json:"km"`
	Midpoint   Coordinates    `json:"midpoint"`
}

type Route struct {
	Sorted  []LocationRecord `json:"sorted"`
	Legs    []TravelLeg      `json:"legs"`
	TotalKm int              `json:"totalKm"`
}

type Stats struct {
	Cities       int     `json:"cities"`
	Countries    int     `json:"countries"`
	Continents   int     `json:"continents"`
	KmTraveled   int     `json:"kmTraveled"`
	EarthCircles float64 `json:"earthCircles"`
}
