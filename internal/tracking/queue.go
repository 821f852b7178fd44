package tracking

import "nomadix/internal/models"

// VisitQueue buffers promoted visits until there are enough to hand over in one batch.
type VisitQueue struct {
	limit int
	items []models.VisitRecord
}

func NewVisitQueue(limit int) *VisitQueue {
	return &VisitQueue{limit: max(limit, 1)}
}

// Push appends the visit unless a visit for the same place and level is already waiting.
// It reports whether the visit was queued.
func (q *VisitQueue) Push(visit models.VisitRecord) bool {
	for _, queued := range q.items {
		if queued.SamePlace(visit) {
			return false
		}
	}
	q.items = append(q.items, visit)
	return true
}

func (q *VisitQueue) Len() int {
	return len(q.items)
}

func (q *VisitQueue) ShouldFlush() bool {
	return len(q.items) >= q.limit
}

func (q *VisitQueue) Items() []models.VisitRecord {
	out := make([]models.VisitRecord, len(q.items))
	copy(out, q.items)
	return out
}

func (q *VisitQueue) Clear() {
	q.items = nil
}
