package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quesurifn/ics-attendance-server/types"
)

// Store is the slice of the attendance table store the tracker needs. The
// table is always written whole; incremental patching would corrupt state if
// a run is re-invoked after partial completion.
type Store interface {
	LoadAttendance(ctx context.Context) (map[string]bool, error)
	SaveTable(ctx context.Context, events []types.Event, stats types.Statistics) error
	Events(ctx context.Context) ([]types.Event, error)
	SetAttended(ctx context.Context, uid string, attended bool) error
}

// Feed downloads and parses the timetable feed.
type Feed interface {
	Download(ctx context.Context, url string) (string, error)
	Parse(data string) []types.Event
}

// Tracker runs the fetch -> parse -> reconcile -> compute -> save pipeline.
// Target, OptionalTypes and the clock are explicit inputs so that a run is
// deterministic and re-running against an unchanged feed is idempotent.
type Tracker struct {
	Logger *zap.Logger
	Feed   Feed
	Store  Store

	FeedURL       string
	Target        float64
	OptionalTypes []string

	// Now overrides the clock; nil means time.Now in UTC.
	Now func() time.Time
}

type Report struct {
	Events     []types.Event
	Statistics types.Statistics
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now().UTC()
}

// Refresh runs one full update. The stored attendance is read before any
// event is parsed, merged into the fresh parse, and the whole table is
// overwritten at the end. A fetch failure aborts the run before anything is
// written.
func (t *Tracker) Refresh(ctx context.Context) (Report, error) {
	log := t.Logger.With(zap.String("run_id", uuid.NewString()))

	saved, err := t.Store.LoadAttendance(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load attendance: %w", err)
	}

	data, err := t.Feed.Download(ctx, t.FeedURL)
	if err != nil {
		return Report{}, err
	}

	events := Reconcile(t.Feed.Parse(data), saved)
	stats := ComputeStatistics(events, t.now(), t.OptionalTypes, t.Target)

	if err := t.Store.SaveTable(ctx, events, stats); err != nil {
		return Report{}, fmt.Errorf("save table: %w", err)
	}

	log.Info("refresh complete",
		zap.Int("events", stats.TotalEvents),
		zap.Int("attended", stats.Attended),
		zap.Float64("attendance_rate", stats.AttendanceRate),
		zap.String("target_status", stats.TargetStatus()),
	)
	return Report{Events: events, Statistics: stats}, nil
}

// Recompute derives fresh statistics from the stored table without touching
// the upstream feed.
func (t *Tracker) Recompute(ctx context.Context) (Report, error) {
	events, err := t.Store.Events(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load events: %w", err)
	}
	stats := ComputeStatistics(events, t.now(), t.OptionalTypes, t.Target)
	return Report{Events: events, Statistics: stats}, nil
}

// SetAttendance flags one stored event and returns the recomputed report.
func (t *Tracker) SetAttendance(ctx context.Context, uid string, attended bool) (Report, error) {
	if err := t.Store.SetAttended(ctx, uid, attended); err != nil {
		return Report{}, fmt.Errorf("set attended: %w", err)
	}
	return t.Recompute(ctx)
}
