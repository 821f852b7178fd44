package route

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"nomadix/internal/models"
)

// GeoJSON renders a route for map clients: a Point per visited place and a LineString per leg.
func GeoJSON(route models.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, r := range route.Sorted {
		f := geojson.NewFeature(r.Point())
		f.ID = r.ID
		f.Properties["city"] = r.City
		f.Properties["country"] = r.Country
		f.Properties["continent"] = r.Continent
		f.Properties["date"] = r.Date
		f.Properties["isSynced"] = r.IsSynced
		fc.Append(f)
	}

	for _, leg := range route.Legs {
		f := geojson.NewFeature(orb.LineString{leg.From.Point(), leg.To.Point()})
		f.Properties["from"] = leg.From.City
		f.Properties["to"] = leg.To.City
		f.Properties["km"] = leg.DistanceKm
		fc.Append(f)
	}

	return fc
}
