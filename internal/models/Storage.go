package models

import "time"

// StorageVersion is the current on-disk envelope version.
const StorageVersion = 1

// Storage is the persistence envelope of the file record store.
// One envelope holds every key written to the file.
type Storage struct {
	Version int                         `json:"version"`
	SavedAt time.Time                   `json:"saved_at"`
	Entries map[string][]LocationRecord `json:"entries"`
}
