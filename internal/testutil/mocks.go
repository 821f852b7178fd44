package testutil

import (
	"context"
	"sync"
	"time"

	"nomadix/internal/models"
	"nomadix/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, entry := range m.Logs {
		if entry.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu         sync.Mutex
	Ticks      map[string]int
	Promotions map[string]int
	Records    int
	QueueSize  int
	Merges     int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) IncTicks(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Ticks == nil {
		m.Ticks = make(map[string]int)
	}
	m.Ticks[result]++
}

func (m *MockMetrics) IncPromotions(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Promotions == nil {
		m.Promotions = make(map[string]int)
	}
	m.Promotions[level]++
}

func (m *MockMetrics) ObserveMergeDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Merges++
}

func (m *MockMetrics) SetRecordsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = count
}

func (m *MockMetrics) SetQueueSize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueueSize = count
}

func (m *MockMetrics) TickCount(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Ticks[result]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements the storage compressor with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockStore implements storage.RecordStore in memory with injectable failures.
type MockStore struct {
	mu       sync.Mutex
	Data     map[string][]models.LocationRecord
	SetCalls int
	GetErr   error
	SetErr   error
}

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string][]models.LocationRecord)}
}

func (m *MockStore) Get(_ context.Context, key string) ([]models.LocationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return models.CloneRecords(m.Data[key]), nil
}

func (m *MockStore) Set(_ context.Context, key string, records []models.LocationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Data == nil {
		m.Data = make(map[string][]models.LocationRecord)
	}
	m.Data[key] = models.CloneRecords(records)
	return nil
}

// MockSnapshotSource returns the queued snapshots one per call, then nil.
type MockSnapshotSource struct {
	mu        sync.Mutex
	Snapshots []*models.LocationSnapshot
	Err       error
	Calls     int
	// Block, when set, is waited on before returning.
	Block chan struct{}
}

func (m *MockSnapshotSource) Current(_ context.Context) (*models.LocationSnapshot, error) {
	if m.Block != nil {
		<-m.Block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Snapshots) == 0 {
		return nil, nil
	}
	next := m.Snapshots[0]
	m.Snapshots = m.Snapshots[1:]
	return next, nil
}

func (m *MockSnapshotSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockHistorySource returns fixed records or an error.
type MockHistorySource struct {
	Records []models.LocationRecord
	Err     error
	Calls   int
}

func (m *MockHistorySource) Fetch(_ context.Context) ([]models.LocationRecord, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return models.CloneRecords(m.Records), nil
}

// MockMerger records merged visit batches.
type MockMerger struct {
	mu      sync.Mutex
	Batches [][]models.VisitRecord
	Err     error
}

func (m *MockMerger) MergeVisits(_ context.Context, visits []models.VisitRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Batches = append(m.Batches, visits)
	return nil
}

func (m *MockMerger) BatchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Batches)
}
