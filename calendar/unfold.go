package calendar

import "strings"

// UnfoldLines reassembles the logical lines of a line-folded feed. A physical
// line beginning with a single space or tab continues the previous logical
// line; exactly that one character is dropped and the remainder appended.
// Both \n and \r\n terminators are accepted. Malformed folding is not an
// error, the reassembly is purely mechanical.
func UnfoldLines(raw string) []string {
	if raw == "" {
		return nil
	}
	raw = strings.TrimSuffix(raw, "\n")

	var lines []string
	var cur strings.Builder
	started := false

	for _, physical := range strings.Split(raw, "\n") {
		physical = strings.TrimSuffix(physical, "\r")

		if started && len(physical) > 0 && (physical[0] == ' ' || physical[0] == '\t') {
			cur.WriteString(physical[1:])
			continue
		}

		if started {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		cur.WriteString(physical)
		started = true
	}

	if started {
		lines = append(lines, cur.String())
	}
	return lines
}
