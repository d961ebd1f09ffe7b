package attendance

import (
	"testing"
	"time"

	"github.com/quesurifn/ics-attendance-server/types"
)

func TestReconcile(t *testing.T) {
	start := time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)
	events := []types.Event{
		{UID: "kept", StartDate: start},
		{UID: "new", StartDate: start},
		{UID: "", StartDate: start},
	}
	saved := map[string]bool{
		"kept":  true,
		"stale": true, // no longer in the feed
		"":      true, // must never match an empty UID
	}

	out := Reconcile(events, saved)

	if len(out) != len(events) {
		t.Fatalf("got %d events, want %d", len(out), len(events))
	}
	if !out[0].Attended {
		t.Error("event with saved UID should keep its flag")
	}
	if out[1].Attended {
		t.Error("event with unmatched UID should default to false")
	}
	if out[2].Attended {
		t.Error("event with empty UID should never regain attendance")
	}

	// The saved map is input only.
	if len(saved) != 3 || !saved["stale"] {
		t.Error("saved map must not be modified")
	}

	// A stale saved entry must not resurface in the merged result.
	for _, ev := range out {
		if ev.UID == "stale" {
			t.Error("stale saved entry reappeared after merge")
		}
	}
}
