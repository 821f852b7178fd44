package models

// TrackingState is a read-only view of a tracking session.
type TrackingState struct {
	Paused      bool                 `json:"paused"`
	ActiveStays map[Level]ActiveStay `json:"activeStays"`
	Queued      []VisitRecord        `json:"queued"`
}
