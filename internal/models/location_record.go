package models

import (
	"sort"
	"time"

	"github.com/paulmach/orb"
)

// DateLayout is the ISO-8601 layout used for locally produced record dates.
// Remote rows may carry day precision ("2023-01-15"); both sort correctly as strings.
const DateLayout = "2006-01-02T15:04:05.000Z"

// LocationRecord is an entry of the canonical travel history.
// IsSynced marks remote-authoritative rows; local detections and manual additions are unsynced.
type LocationRecord struct {
	ID        string  `json:"id" yaml:"id"`
	City      string  `json:"city" yaml:"city"`
	Country   string  `json:"country" yaml:"country"`
	Continent string  `json:"continent" yaml:"continent"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Date      string  `json:"date" yaml:"date"`
	IsSynced  bool    `json:"isSynced" yaml:"isSynced"`
}

// IdentityKey identifies a place regardless of coordinates or date.
type IdentityKey struct {
	City      string
	Country   string
	Continent string
}

func (r LocationRecord) Key() IdentityKey {
	return IdentityKey{City: r.City, Country: r.Country, Continent: r.Continent}
}

// Point returns the record position in orb (lon, lat) order.
func (r LocationRecord) Point() orb.Point {
	return orb.Point{r.Longitude, r.Latitude}
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

// SortByDate orders records ascending by date in place, keeping the relative order of equal dates.
func SortByDate(records []LocationRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
}

func CloneRecords(records []LocationRecord) []LocationRecord {
	out := make([]LocationRecord, len(records))
	copy(out, records)
	return out
}
