package repository

import (
	"fmt"
	"time"
)

// timeLayout is fixed-width so created_at sorts correctly as text, which
// List relies on for newest-first ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite has no boolean type; flags such as balancing_success and filler are
// stored as 0 or 1.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool { return i != 0 }

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp. Rows inserted by hand or by older
// builds may carry plain RFC 3339 text instead of the fixed-width form.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
