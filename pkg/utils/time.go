package utils

import "time"

// FormatRFC3339 formats a time as RFC3339 with nanosecond precision. The
// sub-second digits matter: record and collection timestamps must advance on
// every write, including writes that land inside the same second.
func FormatRFC3339(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return FormatRFC3339(time.Now())
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
