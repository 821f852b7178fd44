package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// EarthRadiusKm is the mean Earth radius used for great-circle distances.
	EarthRadiusKm = 6371.0

	// EarthCircumferenceKm is the equatorial circumference used for the "times around Earth" figure.
	EarthCircumferenceKm = 40075.0
)

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// HaversineKm returns the great-circle distance between two points in kilometres.
// orb.DistanceHaversine is not used because it is fixed to the WGS84 equatorial radius.
func HaversineKm(from, to orb.Point) float64 {
	lat1, lat2 := from.Lat(), to.Lat()
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(to.Lon() - from.Lon())

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*math.Pow(math.Sin(dLon/2), 2)
	// rounding can push a just past 1 for antipodal points, which would make Sqrt(1-a) NaN
	a = math.Min(1, math.Max(0, a))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Midpoint averages latitude and longitude independently.
// This is a flat approximation, not the spherical midpoint, and it does not
// handle legs crossing the antimeridian.
func Midpoint(from, to orb.Point) orb.Point {
	return orb.Point{(from.Lon() + to.Lon()) / 2, (from.Lat() + to.Lat()) / 2}
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
