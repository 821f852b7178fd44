package sources

import (
	"context"

	"nomadix/internal/models"
)

// SnapshotSource yields the device position for one tick.
// A nil snapshot with a nil error means there is nothing new to evaluate.
type SnapshotSource interface {
	Current(ctx context.Context) (*models.LocationSnapshot, error)
}

// HistorySource fetches the authoritative travel history. Every returned record is synced.
type HistorySource interface {
	Fetch(ctx context.Context) ([]models.LocationRecord, error)
}
