// Package route derives travel legs, totals and summary statistics from the travel history.
package route

import (
	"math"

	"nomadix/internal/geo"
	"nomadix/internal/models"
)

// Build orders a copy of records by date and connects consecutive records with legs.
// Leg distances are rounded for display; the total is rounded once from the exact sum.
func Build(records []models.LocationRecord) models.Route {
	sorted := models.CloneRecords(records)
	models.SortByDate(sorted)

	route := models.Route{Sorted: sorted, Legs: []models.TravelLeg{}}
	if len(sorted) < 2 {
		return route
	}

	route.Legs = make([]models.TravelLeg, 0, len(sorted)-1)
	total := 0.0
	for i := 1; i < len(sorted); i++ {
		from, to := sorted[i-1], sorted[i]
		km := geo.HaversineKm(from.Point(), to.Point())
		total += km

		mid := geo.Midpoint(from.Point(), to.Point())
		route.Legs = append(route.Legs, models.TravelLeg{
			From:       from,
			To:         to,
			DistanceKm: int(math.Round(km)),
			Midpoint:   models.Coordinates{Latitude: mid.Lat(), Longitude: mid.Lon()},
		})
	}
	route.TotalKm = int(math.Round(total))
	return route
}

// ComputeStats counts distinct place names (case-sensitive) and the distance travelled.
func ComputeStats(records []models.LocationRecord) models.Stats {
	cities := make(map[string]struct{})
	countries := make(map[string]struct{})
	continents := make(map[string]struct{})
	for _, r := range records {
		cities[r.City] = struct{}{}
		countries[r.Country] = struct{}{}
		continents[r.Continent] = struct{}{}
	}

	km := Build(records).TotalKm
	return models.Stats{
		Cities:       len(cities),
		Countries:    len(countries),
		Continents:   len(continents),
		KmTraveled:   km,
		EarthCircles: geo.RoundTo(float64(km)/geo.EarthCircumferenceKm, 2),
	}
}
