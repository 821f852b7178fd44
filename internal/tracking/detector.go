package tracking

import (
	"maps"
	"time"

	"nomadix/internal/models"
	"nomadix/internal/structures"
)

// StayDetector turns consecutive snapshots into visits, tracking one stay per level.
// It is not safe for concurrent use; the scheduler owns it.
type StayDetector struct {
	thresholds map[models.Level]time.Duration
	active     map[models.Level]models.ActiveStay
}

func NewStayDetector(thresholds structures.Thresholds) *StayDetector {
	return &StayDetector{
		thresholds: map[models.Level]time.Duration{
			models.LevelCity:      thresholds.City,
			models.LevelCountry:   thresholds.Country,
			models.LevelContinent: thresholds.Continent,
		},
		active: make(map[models.Level]models.ActiveStay, len(models.Levels)),
	}
}

// Evaluate advances every level with the snapshot and returns the visits promoted by it.
// A promoted level forgets its stay, so the next snapshot in the same place starts a new one.
func (d *StayDetector) Evaluate(snapshot models.LocationSnapshot) []models.VisitRecord {
	var promoted []models.VisitRecord

	for _, level := range models.Levels {
		name := snapshot.PlaceName(level)
		stay, ok := d.active[level]

		if !ok || stay.Name != name {
			d.active[level] = models.ActiveStay{Name: name, StartedAt: snapshot.Timestamp}
			continue
		}

		if snapshot.Timestamp.Sub(stay.StartedAt) < d.thresholds[level] {
			continue
		}

		promoted = append(promoted, models.VisitRecord{
			Level:     level,
			City:      snapshot.City,
			Country:   snapshot.Country,
			Continent: snapshot.Continent,
			Latitude:  snapshot.Latitude,
			Longitude: snapshot.Longitude,
			VisitedAt: stay.StartedAt,
		})
		delete(d.active, level)
	}

	return promoted
}

func (d *StayDetector) ActiveStays() map[models.Level]models.ActiveStay {
	return maps.Clone(d.active)
}
