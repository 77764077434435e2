package store

import "time"

// timeFormat is RFC 3339 with fixed-width nanoseconds. Eligibility checks
// compare timestamps as text in SQL, which is only valid when every stored
// value has the same width and zone (always UTC here).
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeFormat, s)
	return t
}
