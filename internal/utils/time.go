package utils

import "time"

// ISO8601 formats t in UTC the way the funnel stores and reports timestamps.
// Use it everywhere a timestamp leaves the process so formats stay consistent.
func ISO8601(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Millis converts d to whole milliseconds, the unit of every duration
// property sent to analytics.
func Millis(d time.Duration) int64 {
	return d.Milliseconds()
}
