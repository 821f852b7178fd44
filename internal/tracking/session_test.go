package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadix/internal/models"
	"nomadix/internal/structures"
)

func sessionConfig(batchLimit int) *structures.Config {
	return &structures.Config{
		Tracking: structures.TrackingConfig{
			PollInterval: time.Second,
			Thresholds:   testThresholds,
			BatchLimit:   batchLimit,
		},
	}
}

func TestSession_QueuesPromotedVisits(t *testing.T) {
	s := NewSession(sessionConfig(10))
	s.Evaluate(paris(t0))

	queued := s.Evaluate(paris(t0.Add(30 * time.Second)))

	require.Len(t, queued, 1)
	assert.Equal(t, 1, s.Queue().Len())
}

func TestSession_DuplicateVisitStillClearsStay(t *testing.T) {
	s := NewSession(sessionConfig(10))
	s.Evaluate(paris(t0))
	require.Len(t, s.Evaluate(paris(t0.Add(30*time.Second))), 1)

	s.Evaluate(paris(t0.Add(40 * time.Second)))
	queued := s.Evaluate(paris(t0.Add(70 * time.Second)))

	assert.Empty(t, queued)
	assert.Equal(t, 1, s.Queue().Len())
	_, active := s.State(false).ActiveStays[models.LevelCity]
	assert.False(t, active)
}

func TestSession_State(t *testing.T) {
	s := NewSession(sessionConfig(10))
	s.Evaluate(paris(t0))
	s.Evaluate(paris(t0.Add(30 * time.Second)))

	state := s.State(true)

	assert.True(t, state.Paused)
	assert.Len(t, state.Queued, 1)
	assert.Len(t, state.ActiveStays, 2)
}
