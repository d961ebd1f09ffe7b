package attendance

import (
	"math"
	"time"

	"github.com/quesurifn/ics-attendance-server/types"
)

// ComputeStatistics derives an attendance snapshot from reconciled events at
// a fixed instant. Event types listed in optionalTypes are excluded from the
// "required" denominators. The target ratio applies to all required events
// over the whole course, so NeededForTarget can exceed FutureRequired; that
// case is surfaced through TargetReachable before CanStillMiss is clamped.
func ComputeStatistics(events []types.Event, now time.Time, optionalTypes []string, target float64) types.Statistics {
	optional := make(map[string]bool, len(optionalTypes))
	for _, name := range optionalTypes {
		optional[name] = true
	}

	var s types.Statistics
	for _, ev := range events {
		isPast := ev.StartDate.Before(now)
		isOptional := optional[ev.EventType]

		s.TotalEvents++
		if !isOptional {
			s.TotalRequired++
		}
		if isPast {
			s.PastEvents++
			if !isOptional {
				s.PastRequired++
			}
		} else if !isOptional {
			s.FutureRequired++
		}
		if ev.Attended {
			s.Attended++
			if !isOptional {
				s.AttendedRequired++
			}
		}
	}

	if s.PastRequired > 0 {
		s.AttendanceRate = float64(s.AttendedRequired) / float64(s.PastRequired)
	}
	if s.PastEvents > 0 {
		s.AttendanceRateAll = float64(s.Attended) / float64(s.PastEvents)
	}

	needed := int(math.Ceil(float64(s.TotalRequired)*target)) - s.AttendedRequired
	s.TargetReachable = needed <= s.FutureRequired
	if needed < 0 {
		needed = 0
	}
	s.NeededForTarget = needed

	s.CanStillMiss = s.FutureRequired - needed
	if s.CanStillMiss < 0 {
		s.CanStillMiss = 0
	}

	return s
}
