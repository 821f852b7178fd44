package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"nomadix/internal/models"
	"nomadix/internal/providers"
	"nomadix/internal/sources"
	"nomadix/internal/storage"
	"nomadix/internal/structures"
)

type TravelServiceInterface interface {
	Load(ctx context.Context) error
	Seed(ctx context.Context) error
	MergeVisits(ctx context.Context, visits []models.VisitRecord) error
	AddLocation(ctx context.Context, record models.LocationRecord) (models.LocationRecord, bool, error)
	GetLocations() []models.LocationRecord
	Version() uint64
}

// TravelService owns the canonical travel history.
//
// Writers are serialized and replace the list wholesale: the new slice is stored first
// and published second, so readers load a complete list without locking.
type TravelService struct {
	key     string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	store   storage.RecordStore
	history sources.HistorySource

	writeMu sync.Mutex
	records *atomic.Pointer[[]models.LocationRecord]
	version *atomic.Uint64
}

func NewTravelService(
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	store storage.RecordStore,
	history sources.HistorySource,
) TravelServiceInterface {
	empty := make([]models.LocationRecord, 0)
	return &TravelService{
		key:     conf.Storage.Key,
		logger:  logger,
		metrics: metrics,
		store:   store,
		history: history,
		records: atomic.NewPointer(&empty),
		version: atomic.NewUint64(0),
	}
}

// Load replaces the in-memory list with the stored one.
func (s *TravelService) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	records, err := s.store.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("services.TravelService.Load: %w", err)
	}
	models.SortByDate(records)
	s.publishLocked(records)

	s.logger.Infof(providers.TypeApp, "Loaded %d records", len(records))
	return nil
}

// Seed pulls the remote history. On failure the list is left as it was.
func (s *TravelService) Seed(ctx context.Context) error {
	if s.history == nil {
		s.logger.Infof(providers.TypeApp, "No history source configured, skipping seed")
		return nil
	}

	remote, err := s.history.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("services.TravelService.Seed: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := Reconcile(s.GetLocations(), remote)
	if err := s.storeLocked(ctx, next); err != nil {
		return fmt.Errorf("services.TravelService.Seed: %w", err)
	}

	s.logger.Infof(providers.TypeApp, "Seeded %d remote records, %d total", len(remote), len(next))
	return nil
}

func (s *TravelService) MergeVisits(ctx context.Context, visits []models.VisitRecord) error {
	candidates := make([]models.LocationRecord, 0, len(visits))
	for _, v := range visits {
		candidates = append(candidates, v.ToLocationRecord())
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, added := Merge(s.GetLocations(), candidates)
	if added == 0 {
		return nil
	}
	if err := s.storeLocked(ctx, next); err != nil {
		return fmt.Errorf("services.TravelService.MergeVisits: %w", err)
	}

	s.logger.Infof(providers.TypeTracker, "Merged %d of %d visits", added, len(visits))
	return nil
}

// AddLocation merges one manually entered record. The bool reports whether it was added;
// a record whose place is already in the history leaves the list unchanged.
func (s *TravelService) AddLocation(ctx context.Context, record models.LocationRecord) (models.LocationRecord, bool, error) {
	if err := validateRecord(record); err != nil {
		return models.LocationRecord{}, false, fmt.Errorf("services.TravelService.AddLocation: %w", err)
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.IsSynced = false

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, added := Merge(s.GetLocations(), []models.LocationRecord{record})
	if added == 0 {
		return record, false, nil
	}
	if err := s.storeLocked(ctx, next); err != nil {
		return models.LocationRecord{}, false, fmt.Errorf("services.TravelService.AddLocation: %w", err)
	}

	s.logger.Infof(providers.TypeApp, "Added %s, %s", record.City, record.Country)
	return record, true, nil
}

// GetLocations returns the current date-ordered list. The slice is shared and must not be modified.
func (s *TravelService) GetLocations() []models.LocationRecord {
	return *s.records.Load()
}

// Version increases on every published change.
func (s *TravelService) Version() uint64 {
	return s.version.Load()
}

func (s *TravelService) storeLocked(ctx context.Context, next []models.LocationRecord) error {
	start := time.Now()
	if err := s.store.Set(ctx, s.key, next); err != nil {
		return err
	}
	s.metrics.ObserveMergeDuration(time.Since(start))
	s.publishLocked(next)
	return nil
}

func (s *TravelService) publishLocked(next []models.LocationRecord) {
	if next == nil {
		next = make([]models.LocationRecord, 0)
	}
	s.records.Store(&next)
	s.version.Inc()
	s.metrics.SetRecordsTotal(len(next))
}

func validateRecord(r models.LocationRecord) error {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"city", r.City},
		{"country", r.Country},
		{"continent", r.Continent},
		{"date", r.Date},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", models.ErrValidation, strings.Join(missing, ", "))
	}
	if _, err := models.ParseDate(r.Date); err != nil {
		return fmt.Errorf("%w: date %q is not ISO-8601", models.ErrValidation, r.Date)
	}
	return nil
}
