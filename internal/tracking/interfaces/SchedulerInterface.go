package interfaces

import (
	"context"

	"nomadix/internal/models"
)

// TickResult is the outcome of one poll tick.
type TickResult string

const (
	TickPaused      TickResult = "paused"
	TickBusy        TickResult = "busy"
	TickSkipped     TickResult = "skipped"
	TickEvaluated   TickResult = "evaluated"
	TickFlushed     TickResult = "flushed"
	TickFlushFailed TickResult = "flush_failed"
)

type SchedulerInterface interface {
	Init()
	Stop()
	Pause()
	Resume()
	Paused() bool
	Tick(ctx context.Context) TickResult
	Flush(ctx context.Context) error
	State() models.TrackingState
}
