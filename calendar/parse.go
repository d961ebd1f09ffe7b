package calendar

import (
	"regexp"
	"strings"

	"github.com/quesurifn/ics-attendance-server/types"
)

const (
	beginEvent = "BEGIN:VEVENT"
	endEvent   = "END:VEVENT"

	unknownEventType = "Unknown"
	noLecturers      = "Not specified"
)

// propertyKind is the closed set of VEVENT properties the parser acts on.
// Anything else dispatches to propIgnored, the zero value.
type propertyKind int

const (
	propIgnored propertyKind = iota
	propSummary
	propDtStart
	propDtEnd
	propLocation
	propDescription
	propCategories
	propUID
)

var propertyKinds = map[string]propertyKind{
	"SUMMARY":     propSummary,
	"DTSTART":     propDtStart,
	"DTEND":       propDtEnd,
	"LOCATION":    propLocation,
	"DESCRIPTION": propDescription,
	"CATEGORIES":  propCategories,
	"UID":         propUID,
}

var (
	summaryPattern  = regexp.MustCompile(`^(.+?)\s*\[(.+?)\]$`)
	lecturerPattern = regexp.MustCompile(`Lecturers:\s*([^,]+(?:,\s*[^,]+)*)`)
)

// ParseEvents extracts every BEGIN:VEVENT/END:VEVENT block from a raw feed.
// Property values the parser cannot interpret degrade to defaults; nothing in
// the feed content makes parsing fail.
func ParseEvents(data string) []types.Event {
	var events []types.Event
	var cur *types.Event

	for _, line := range UnfoldLines(data) {
		switch {
		case line == beginEvent:
			cur = &types.Event{EventType: unknownEventType, Lecturers: noLecturers}
		case line == endEvent:
			if cur != nil {
				events = append(events, *cur)
				cur = nil
			}
		case cur != nil:
			applyProperty(cur, line)
		}
	}
	return events
}

// applyProperty folds one logical line into the event under construction.
// Lines without a colon are ignored. Parameters after the first semicolon on
// the key are discarded; dispatch uses the bare property name only.
func applyProperty(ev *types.Event, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	if i := strings.Index(key, ";"); i >= 0 {
		key = key[:i]
	}

	switch propertyKinds[key] {
	case propSummary:
		ev.Summary = value
		ev.CourseName, ev.EventType = splitSummary(value)
	case propDtStart:
		if t, ok := decodeCompactTime(value); ok {
			ev.StartDate = t
		}
	case propDtEnd:
		if t, ok := decodeCompactTime(value); ok {
			ev.EndDate = t
		}
	case propLocation:
		ev.Location = value
	case propDescription:
		ev.Description = value
		ev.Lecturers = extractLecturers(value)
	case propCategories:
		ev.Category = value
	case propUID:
		ev.UID = value
	}
}

// splitSummary separates "Course Name [Type]" into its parts. Summaries
// without the trailing bracket pattern keep the whole text as the course
// name and get the Unknown type.
func splitSummary(summary string) (courseName, eventType string) {
	if m := summaryPattern.FindStringSubmatch(summary); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return summary, unknownEventType
}

// extractLecturers pulls the comma-separated lecturer list out of a
// description. The list runs up to a literal "Event type:" marker when one
// follows; a missing "Lecturers:" marker yields the fallback text.
func extractLecturers(description string) string {
	m := lecturerPattern.FindStringSubmatch(description)
	if m == nil {
		return noLecturers
	}

	list := m[1]
	if i := strings.Index(list, "Event type:"); i >= 0 {
		list = list[:i]
	}
	list = strings.TrimSpace(list)
	list = strings.TrimSuffix(list, ",")
	return strings.TrimSpace(list)
}
