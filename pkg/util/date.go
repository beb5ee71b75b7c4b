package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// FormatDate renders a timestamp as "January 02, 2006" for report headers.
func FormatDate(t time.Time) string {
	return t.Format("January 02, 2006")
}

// Greeting returns a time-of-day greeting for the given IANA timezone.
// Falls back to a neutral greeting when the zone cannot be loaded.
func Greeting(tz string, now time.Time) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "Hello"
	}
	hour := now.In(loc).Hour()
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
