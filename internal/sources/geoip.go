package sources

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/oschwald/geoip2-golang"

	"nomadix/internal/geo"
	"nomadix/internal/models"
	"nomadix/internal/structures"
)

// GeoIPSource locates a fixed public IP through a MaxMind GeoIP2 City database.
// It suits a stationary host, where every tick reports the same place.
type GeoIPSource struct {
	reader *geoip2.Reader
	ip     net.IP
	now    func() time.Time
}

func NewGeoIPSource(conf *structures.Config) (*GeoIPSource, error) {
	ip := net.ParseIP(conf.GeoIP.IP)
	if ip == nil {
		return nil, fmt.Errorf("sources.NewGeoIPSource: invalid ip %q", conf.GeoIP.IP)
	}
	reader, err := geoip2.Open(conf.GeoIP.Database)
	if err != nil {
		return nil, fmt.Errorf("sources.NewGeoIPSource: %w", err)
	}
	return &GeoIPSource{reader: reader, ip: ip, now: time.Now}, nil
}

func (g *GeoIPSource) Current(_ context.Context) (*models.LocationSnapshot, error) {
	record, err := g.reader.City(g.ip)
	if err != nil {
		return nil, fmt.Errorf("sources.GeoIPSource.Current: %v: %w", err, models.ErrGeocodeUnavailable)
	}
	return snapshotFromCity(record, g.now())
}

func (g *GeoIPSource) Close() error {
	return g.reader.Close()
}

func snapshotFromCity(record *geoip2.City, at time.Time) (*models.LocationSnapshot, error) {
	if record.Country.IsoCode == "" {
		return nil, fmt.Errorf("sources.GeoIPSource.Current: %w", models.ErrGeocodeUnavailable)
	}
	continent, ok := geo.ContinentByISO(record.Country.IsoCode)
	if !ok {
		return nil, fmt.Errorf("sources.GeoIPSource.Current: iso code %q: %w", record.Country.IsoCode, models.ErrContinentUnresolvable)
	}

	return &models.LocationSnapshot{
		City:      orUnknown(record.City.Names["en"]),
		Country:   orUnknown(record.Country.Names["en"]),
		Continent: continent,
		Latitude:  record.Location.Latitude,
		Longitude: record.Location.Longitude,
		Timestamp: at,
	}, nil
}
