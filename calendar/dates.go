package calendar

import (
	"strconv"
	"time"
)

// decodeCompactTime decodes the basic iCalendar date-time form
// YYYYMMDDTHHMMSS with an optional trailing designator. Values shorter than
// 15 characters (or with non-numeric date fields) decode to absent instead of
// failing the parse. The instant is always interpreted as UTC; TZID
// parameters and VTIMEZONE blocks are deliberately not resolved.
func decodeCompactTime(value string) (time.Time, bool) {
	if len(value) < 15 {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(value[0:4])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(value[4:6])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(value[6:8])
	if err != nil {
		return time.Time{}, false
	}
	// value[8] is the T separator, skipped structurally.
	hour, err := strconv.Atoi(value[9:11])
	if err != nil {
		return time.Time{}, false
	}
	minute, err := strconv.Atoi(value[11:13])
	if err != nil {
		return time.Time{}, false
	}
	second, err := strconv.Atoi(value[13:15])
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), true
}
