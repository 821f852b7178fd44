package tracking

import (
	"nomadix/internal/models"
	"nomadix/internal/structures"
)

// Session is the state of one tracking run: the active stays and the pending batch.
type Session struct {
	detector *StayDetector
	queue    *VisitQueue
}

func NewSession(conf *structures.Config) *Session {
	return &Session{
		detector: NewStayDetector(conf.Tracking.Thresholds),
		queue:    NewVisitQueue(conf.Tracking.BatchLimit),
	}
}

// Evaluate feeds the snapshot to the detector and queues what it promotes.
// The returned slice holds only the visits that were actually queued.
func (s *Session) Evaluate(snapshot models.LocationSnapshot) []models.VisitRecord {
	var queued []models.VisitRecord
	for _, visit := range s.detector.Evaluate(snapshot) {
		if s.queue.Push(visit) {
			queued = append(queued, visit)
		}
	}
	return queued
}

func (s *Session) Queue() *VisitQueue {
	return s.queue
}

func (s *Session) State(paused bool) models.TrackingState {
	return models.TrackingState{
		Paused:      paused,
		ActiveStays: s.detector.ActiveStays(),
		Queued:      s.queue.Items(),
	}
}
