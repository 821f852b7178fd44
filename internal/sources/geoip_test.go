package sources

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadix/internal/models"
	"nomadix/internal/structures"
)

func TestSnapshotFromCity(t *testing.T) {
	var record geoip2.City
	record.City.Names = map[string]string{"en": "London"}
	record.Country.IsoCode = "GB"
	record.Country.Names = map[string]string{"en": "United Kingdom"}
	record.Location.Latitude = 51.5142
	record.Location.Longitude = -0.0931

	snapshot, err := snapshotFromCity(&record, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "London", snapshot.City)
	assert.Equal(t, "United Kingdom", snapshot.Country)
	assert.Equal(t, "Europe", snapshot.Continent)
	assert.Equal(t, -0.0931, snapshot.Longitude)
	assert.Equal(t, fixedNow, snapshot.Timestamp)
}

func TestSnapshotFromCity_NoCityName(t *testing.T) {
	var record geoip2.City
	record.Country.IsoCode = "BR"

	snapshot, err := snapshotFromCity(&record, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, models.UnknownPlace, snapshot.City)
	assert.Equal(t, models.UnknownPlace, snapshot.Country)
	assert.Equal(t, "South America", snapshot.Continent)
}

func TestSnapshotFromCity_NoCountry(t *testing.T) {
	_, err := snapshotFromCity(&geoip2.City{}, fixedNow)
	assert.ErrorIs(t, err, models.ErrGeocodeUnavailable)
}

func TestNewGeoIPSource_InvalidIP(t *testing.T) {
	_, err := NewGeoIPSource(&structures.Config{GeoIP: structures.GeoIPConfig{Database: "x.mmdb", IP: "not-an-ip"}})
	assert.Error(t, err)
}

// Runs against a real GeoLite2/GeoIP2 City database when TEST_GEOIP_DB points to one.
func TestGeoIPSource_Integration(t *testing.T) {
	db := os.Getenv("TEST_GEOIP_DB")
	if db == "" {
		t.Skip("TEST_GEOIP_DB not set")
	}

	source, err := NewGeoIPSource(&structures.Config{GeoIP: structures.GeoIPConfig{Database: db, IP: "81.2.69.142"}})
	require.NoError(t, err)
	defer func() { _ = source.Close() }()
	source.now = func() time.Time { return fixedNow }

	snapshot, err := source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Europe", snapshot.Continent)
}
