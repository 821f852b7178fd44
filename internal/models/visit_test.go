package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisitRecord_ToLocationRecord(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	v := VisitRecord{
		Level:     LevelCity,
		City:      "Da Lat",
		Country:   "Vietnam",
		Continent: "Asia",
		Latitude:  11.9404,
		Longitude: 108.4583,
		VisitedAt: at,
	}

	r := v.ToLocationRecord()

	assert.Equal(t, "city-Da Lat-1710057600000", r.ID)
	assert.Equal(t, "2024-03-10T08:00:00.000Z", r.Date)
	assert.False(t, r.IsSynced)
	assert.Equal(t, 11.9404, r.Latitude)
}

func TestVisitRecord_SamePlace(t *testing.T) {
	a := VisitRecord{Level: LevelCountry, City: "Da Lat", Country: "Vietnam"}
	b := VisitRecord{Level: LevelCountry, City: "Ha Noi", Country: "Vietnam"}
	c := VisitRecord{Level: LevelCity, City: "Da Lat", Country: "Vietnam"}

	assert.True(t, a.SamePlace(b))
	assert.False(t, a.SamePlace(c))
}

func TestLevel_Valid(t *testing.T) {
	for _, l := range Levels {
		assert.True(t, l.Valid())
	}
	assert.False(t, Level("planet").Valid())
}
