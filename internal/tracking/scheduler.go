package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"

	"nomadix/internal/models"
	"nomadix/internal/providers"
	"nomadix/internal/sources"
	"nomadix/internal/structures"
	"nomadix/internal/tracking/interfaces"
)

// VisitMerger accepts a batch of detected visits into the travel history.
type VisitMerger interface {
	MergeVisits(ctx context.Context, visits []models.VisitRecord) error
}

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	source  sources.SnapshotSource
	merger  VisitMerger
	session *Session
	cron    *gron.Cron
	opsMu   sync.Mutex
	paused  *atomic.Bool
	state   *atomic.Pointer[models.TrackingState]
	cancel  context.CancelFunc
}

func (s *Scheduler) Init() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Tracking.PollInterval), func() {
		s.Tick(ctx)
	})
	s.cron.Start()

	go s.Tick(ctx)

	s.logger.Infof(providers.TypeApp, "Tracking started: poll every %s, batch limit %d",
		s.config.Tracking.PollInterval, s.config.Tracking.BatchLimit)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) Pause() {
	if s.paused.CompareAndSwap(false, true) {
		s.logger.Infof(providers.TypeTracker, "Tracking paused")
	}
}

func (s *Scheduler) Resume() {
	if s.paused.CompareAndSwap(true, false) {
		s.logger.Infof(providers.TypeTracker, "Tracking resumed")
	}
}

func (s *Scheduler) Paused() bool {
	return s.paused.Load()
}

// Tick runs one poll: read a snapshot, advance the stays and hand the batch over once it is full.
// A tick that overlaps a running one is dropped.
func (s *Scheduler) Tick(ctx context.Context) interfaces.TickResult {
	result := s.tick(ctx)
	s.metrics.IncTicks(string(result))
	return result
}

func (s *Scheduler) tick(ctx context.Context) interfaces.TickResult {
	if s.paused.Load() {
		return interfaces.TickPaused
	}
	if !s.opsMu.TryLock() {
		s.logger.Debugf(providers.TypeTracker, "Previous tick still running, skipping")
		return interfaces.TickBusy
	}
	defer s.opsMu.Unlock()
	defer s.publishStateLocked()

	snapshot, err := s.source.Current(ctx)
	if err != nil {
		s.logSourceError(err)
		return interfaces.TickSkipped
	}
	if snapshot == nil {
		return interfaces.TickSkipped
	}

	for _, visit := range s.session.Evaluate(*snapshot) {
		s.metrics.IncPromotions(string(visit.Level))
		s.logger.Infof(providers.TypeTracker, "Visit detected: %s %s since %s",
			visit.Level, visit.PlaceName(), models.FormatDate(visit.VisitedAt))
	}

	result := interfaces.TickEvaluated
	if s.session.Queue().ShouldFlush() {
		if err := s.flushLocked(ctx); err != nil {
			s.logger.Errorf(providers.TypeTracker, "Visit batch kept for retry: %s", err)
			result = interfaces.TickFlushFailed
		} else {
			result = interfaces.TickFlushed
		}
	}
	s.metrics.SetQueueSize(s.session.Queue().Len())

	return result
}

// Flush hands any pending visits to the merger regardless of the batch limit.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.flushLocked(ctx)
	s.metrics.SetQueueSize(s.session.Queue().Len())
	s.publishStateLocked()
	return err
}

func (s *Scheduler) flushLocked(ctx context.Context) error {
	queue := s.session.Queue()
	if queue.Len() == 0 {
		return nil
	}

	batch := queue.Items()
	if err := s.merger.MergeVisits(ctx, batch); err != nil {
		return fmt.Errorf("tracking.Scheduler.Flush: %w", err)
	}
	queue.Clear()

	s.logger.Infof(providers.TypeTracker, "Flushed %d visits", len(batch))
	return nil
}

// State returns the session as of the end of the last tick or flush, so it never waits
// on a merge in progress. The paused flag is always current.
func (s *Scheduler) State() models.TrackingState {
	state := *s.state.Load()
	state.Paused = s.paused.Load()
	return state
}

func (s *Scheduler) publishStateLocked() {
	state := s.session.State(false)
	s.state.Store(&state)
}

func (s *Scheduler) logSourceError(err error) {
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		s.logger.Warnf(providers.TypeTracker, "Location unavailable: %s", err)
	case errors.Is(err, models.ErrGeocodeUnavailable), errors.Is(err, models.ErrContinentUnresolvable):
		s.logger.Debugf(providers.TypeTracker, "Snapshot dropped: %s", err)
	default:
		s.logger.Errorf(providers.TypeTracker, "Snapshot source failed: %s", err)
	}
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	source sources.SnapshotSource,
	merger VisitMerger,
) interfaces.SchedulerInterface {
	session := NewSession(config)
	state := session.State(false)
	return &Scheduler{
		config:  config,
		logger:  logger,
		metrics: metrics,
		source:  source,
		merger:  merger,
		session: session,
		paused:  atomic.NewBool(false),
		state:   atomic.NewPointer(&state),
	}
}
