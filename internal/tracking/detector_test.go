package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadix/internal/models"
	"nomadix/internal/structures"
)

var testThresholds = structures.Thresholds{
	City:      30 * time.Second,
	Country:   2 * time.Minute,
	Continent: 5 * time.Minute,
}

var t0 = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func snap(city, country, continent string, at time.Time) models.LocationSnapshot {
	return models.LocationSnapshot{
		City:      city,
		Country:   country,
		Continent: continent,
		Latitude:  48.8566,
		Longitude: 2.3522,
		Timestamp: at,
	}
}

func paris(at time.Time) models.LocationSnapshot {
	return snap("Paris", "France", "Europe", at)
}

func TestStayDetector_FirstSnapshotStartsStays(t *testing.T) {
	d := NewStayDetector(testThresholds)

	assert.Empty(t, d.Evaluate(paris(t0)))

	stays := d.ActiveStays()
	require.Len(t, stays, 3)
	assert.Equal(t, models.ActiveStay{Name: "Paris", StartedAt: t0}, stays[models.LevelCity])
	assert.Equal(t, "France", stays[models.LevelCountry].Name)
	assert.Equal(t, "Europe", stays[models.LevelContinent].Name)
}

func TestStayDetector_PromotesExactlyAtThreshold(t *testing.T) {
	d := NewStayDetector(testThresholds)
	d.Evaluate(paris(t0))

	visits := d.Evaluate(paris(t0.Add(30 * time.Second)))

	require.Len(t, visits, 1)
	assert.Equal(t, models.LevelCity, visits[0].Level)
	assert.Equal(t, "Paris", visits[0].City)
	assert.Equal(t, t0, visits[0].VisitedAt)
	_, active := d.ActiveStays()[models.LevelCity]
	assert.False(t, active)
}

func TestStayDetector_ShorterStayDoesNothing(t *testing.T) {
	d := NewStayDetector(testThresholds)
	d.Evaluate(paris(t0))

	assert.Empty(t, d.Evaluate(paris(t0.Add(29*time.Second))))
	assert.Equal(t, t0, d.ActiveStays()[models.LevelCity].StartedAt)
}

func TestStayDetector_OneShotRestartsAfterPromotion(t *testing.T) {
	d := NewStayDetector(testThresholds)
	d.Evaluate(paris(t0))
	require.Len(t, d.Evaluate(paris(t0.Add(30*time.Second))), 1)

	// the next snapshot in the same city starts a fresh stay
	assert.Empty(t, d.Evaluate(paris(t0.Add(40*time.Second))))
	assert.Equal(t, t0.Add(40*time.Second), d.ActiveStays()[models.LevelCity].StartedAt)

	visits := d.Evaluate(paris(t0.Add(70 * time.Second)))
	require.Len(t, visits, 1)
	assert.Equal(t, t0.Add(40*time.Second), visits[0].VisitedAt)
}

func TestStayDetector_PlaceChangeResetsStay(t *testing.T) {
	d := NewStayDetector(testThresholds)
	d.Evaluate(paris(t0))
	d.Evaluate(snap("Lyon", "France", "Europe", t0.Add(20*time.Second)))

	visits := d.Evaluate(snap("Lyon", "France", "Europe", t0.Add(45*time.Second)))
	assert.Empty(t, visits)
	assert.Equal(t, "Lyon", d.ActiveStays()[models.LevelCity].Name)
	assert.Equal(t, t0.Add(20*time.Second), d.ActiveStays()[models.LevelCity].StartedAt)
	assert.Equal(t, t0, d.ActiveStays()[models.LevelCountry].StartedAt)
}

func TestStayDetector_LevelsAreIndependent(t *testing.T) {
	d := NewStayDetector(testThresholds)
	d.Evaluate(paris(t0))

	visits := d.Evaluate(paris(t0.Add(5 * time.Minute)))

	require.Len(t, visits, 3)
	assert.Equal(t, models.LevelCity, visits[0].Level)
	assert.Equal(t, models.LevelCountry, visits[1].Level)
	assert.Equal(t, models.LevelContinent, visits[2].Level)
	for _, v := range visits {
		assert.Equal(t, t0, v.VisitedAt)
	}
	assert.Empty(t, d.ActiveStays())
}

func TestStayDetector_ActiveStaysIsACopy(t *testing.T) {
	d := NewStayDetector(testThresholds)
	d.Evaluate(paris(t0))

	stays := d.ActiveStays()
	delete(stays, models.LevelCity)

	assert.Len(t, d.ActiveStays(), 3)
}
