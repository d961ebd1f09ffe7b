package calendar

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

const sampleFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-1@uni.example\r\n" +
	"SUMMARY:Intro to X [Lecture]\r\n" +
	"DTSTART;TZID=Europe/London:20240115T110000\r\n" +
	"DTEND:20240115T120000Z\r\n" +
	"LOCATION:Room 4.12\r\n" +
	"DESCRIPTION:Lecturers: Dr A, Dr B Event type: Lecture\r\n" +
	"CATEGORIES:Semester 2\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-2@uni.example\r\n" +
	"SUMMARY:Office Hours\r\n" +
	"DTSTART:20240112T090000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseEventsSample(t *testing.T) {
	events := ParseEvents(sampleFeed)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	first := events[0]
	if first.UID != "evt-1@uni.example" {
		t.Errorf("uid = %q", first.UID)
	}
	if first.CourseName != "Intro to X" || first.EventType != "Lecture" {
		t.Errorf("summary split = (%q, %q), want (Intro to X, Lecture)", first.CourseName, first.EventType)
	}
	wantStart := time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)
	if !first.StartDate.Equal(wantStart) {
		t.Errorf("start = %v, want %v", first.StartDate, wantStart)
	}
	wantEnd := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	if !first.EndDate.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", first.EndDate, wantEnd)
	}
	if first.Location != "Room 4.12" {
		t.Errorf("location = %q", first.Location)
	}
	if first.Lecturers != "Dr A, Dr B" {
		t.Errorf("lecturers = %q, want %q", first.Lecturers, "Dr A, Dr B")
	}
	if first.Category != "Semester 2" {
		t.Errorf("category = %q", first.Category)
	}

	second := events[1]
	if second.CourseName != "Office Hours" || second.EventType != "Unknown" {
		t.Errorf("summary split = (%q, %q), want (Office Hours, Unknown)", second.CourseName, second.EventType)
	}
	if second.Lecturers != "Not specified" {
		t.Errorf("lecturers = %q, want Not specified", second.Lecturers)
	}
	if !second.EndDate.IsZero() {
		t.Errorf("end = %v, want zero", second.EndDate)
	}
}

func TestParseEventsFoldedSummary(t *testing.T) {
	feed := "BEGIN:VEVENT\r\n" +
		"SUMMARY:Intro to\r\n" +
		"  Compilers [Lab]\r\n" +
		"DTSTART:20240110T100000Z\r\n" +
		"END:VEVENT\r\n"

	events := ParseEvents(feed)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].CourseName != "Intro to Compilers" || events[0].EventType != "Lab" {
		t.Errorf("summary split = (%q, %q)", events[0].CourseName, events[0].EventType)
	}
}

func TestParseEventsDegradation(t *testing.T) {
	feed := "BEGIN:VEVENT\r\n" +
		"this line has no separator and is ignored\r\n" +
		"X-UNKNOWN-PROP:also ignored\r\n" +
		"SUMMARY:Seminar\r\n" +
		"DTSTART:20240110\r\n" + // too short, degrades to absent
		"END:VEVENT\r\n"

	events := ParseEvents(feed)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if !events[0].StartDate.IsZero() {
		t.Errorf("short DTSTART should decode to absent, got %v", events[0].StartDate)
	}
	if events[0].Summary != "Seminar" {
		t.Errorf("summary = %q", events[0].Summary)
	}
}

func TestParseEventsOutsideBlockIgnored(t *testing.T) {
	feed := "SUMMARY:Not inside a block\r\n" +
		"BEGIN:VEVENT\r\n" +
		"SUMMARY:Inside\r\n" +
		"END:VEVENT\r\n" +
		"SUMMARY:Also outside\r\n"

	events := ParseEvents(feed)
	if len(events) != 1 || events[0].Summary != "Inside" {
		t.Fatalf("events = %#v, want one event with summary Inside", events)
	}
}

func TestDecodeCompactTime(t *testing.T) {
	got, ok := decodeCompactTime("20240115T110000Z")
	if !ok {
		t.Fatal("decode failed")
	}
	want := time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// No trailing Z is still decoded, still UTC.
	got, ok = decodeCompactTime("20240115T110000")
	if !ok || !got.Equal(want) {
		t.Fatalf("got %v ok=%v, want %v", got, ok, want)
	}

	for _, bad := range []string{"", "20240115", "20240115T1100", "2024011ST110000"} {
		if _, ok := decodeCompactTime(bad); ok {
			t.Errorf("decodeCompactTime(%q) should be absent", bad)
		}
	}
}

func TestExtractLecturers(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Lecturers: Dr A, Dr B Event type: Lecture", "Dr A, Dr B"},
		{"Lecturers: Dr A, Dr B, Event type: Lecture", "Dr A, Dr B"},
		{"Lecturers: Prof X", "Prof X"},
		{"Room change announcement", "Not specified"},
		{"", "Not specified"},
	}
	for _, tc := range cases {
		if got := extractLecturers(tc.in); got != tc.want {
			t.Errorf("extractLecturers(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCalendarParseDropsAndSorts(t *testing.T) {
	feed := "BEGIN:VEVENT\r\n" +
		"UID:later\r\n" +
		"DTSTART:20240201T100000Z\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:no-start\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:earlier\r\n" +
		"DTSTART:20240101T100000Z\r\n" +
		"END:VEVENT\r\n"

	c := New(zap.NewNop())
	events := c.Parse(feed)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (record without start dropped)", len(events))
	}
	if events[0].UID != "earlier" || events[1].UID != "later" {
		t.Fatalf("order = [%s, %s], want [earlier, later]", events[0].UID, events[1].UID)
	}
}
