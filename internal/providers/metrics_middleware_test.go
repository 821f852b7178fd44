package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    {}
func (m *mockMetrics) IncCacheMisses()                                  {}
func (m *mockMetrics) IncTicks(_ string)                                {}
func (m *mockMetrics) IncPromotions(_ string)                           {}
func (m *mockMetrics) ObserveMergeDuration(_ time.Duration)             {}
func (m *mockMetrics) SetRecordsTotal(_ int)                            {}
func (m *mockMetrics) SetQueueSize(_ int)                               {}

type channelLogger struct {
	cacheTestLogger
	infos []TypeEnum
}

func (l *channelLogger) Infof(t TypeEnum, _ string, _ ...interface{}) {
	l.infos = append(l.infos, t)
}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := MetricsMiddleware(metrics, &cacheTestLogger{}, handler)

	req := httptest.NewRequest(http.MethodPost, "/locations", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/locations", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(metrics, &cacheTestLogger{}, handler)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestMetricsMiddleware_LogsToRequestChannel(t *testing.T) {
	logger := &channelLogger{}
	mw := MetricsMiddleware(&mockMetrics{}, logger, dummyHandler("ok"))

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, "/route", nil))
	}

	assert.Equal(t, []TypeEnum{TypeGet, TypePost}, logger.infos)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
