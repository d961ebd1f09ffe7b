package attendance

import "github.com/quesurifn/ics-attendance-server/types"

// Reconcile applies previously saved attendance flags to a freshly parsed
// event list. An event whose UID is empty or absent from saved defaults to
// not attended. The saved map is never modified; entries for UIDs that no
// longer appear in the feed are discarded when the table is rewritten whole.
func Reconcile(events []types.Event, saved map[string]bool) []types.Event {
	out := make([]types.Event, len(events))
	for i, ev := range events {
		ev.Attended = ev.UID != "" && saved[ev.UID]
		out[i] = ev
	}
	return out
}
