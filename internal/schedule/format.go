package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format returns a human-readable table of the schedule with the entry
// active at now marked with "*" and past entries with "✓".
func Format(s Schedule, now time.Time) string {
	if len(s) == 0 {
		return "No schedule configured\n"
	}

	active, hasActive := s.Active(Of(now))

	entries := make([]Entry, len(s))
	copy(entries, s)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Minutes() < entries[j].At.Minutes()
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Schedule for %s (timezone: %s)\n", now.Format("2006-01-02"), now.Location()))
	sb.WriteString(fmt.Sprintf("%-3s %-8s %s\n", "", "TIME", "COLOR"))
	sb.WriteString(strings.Repeat("-", 24) + "\n")

	for _, e := range entries {
		status := " "
		switch {
		case hasActive && e == active:
			status = "*"
		case e.At.Minutes() <= Of(now).Minutes():
			status = "✓"
		}
		sb.WriteString(fmt.Sprintf("%-3s %-8s %s\n", status, e.At, e.Color))
	}

	if !hasActive {
		sb.WriteString("No entry active yet today\n")
	}

	return sb.String()
}
