package service

import "time"

// displayTimeLayout matches what the dashboard frontend renders.
const displayTimeLayout = "02/01 15:04"

// dayBounds returns the inclusive [start, end] of the calendar day t names,
// anchored in the given location. The civil date is read off t as expressed
// in t's own location: a date-only value parsed as midnight UTC selects that
// same calendar day in loc, never the day before it. A zero t means "today"
// in loc. The location is always explicit; there is no process-wide default
// timezone.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if t.IsZero() {
		t = time.Now().In(loc)
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// formatLocal renders a timestamp in the given location for display.
func formatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(displayTimeLayout)
}
