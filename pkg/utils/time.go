package utils

import "time"

// TodayDate returns the current date as YYYY-MM-DD, the format the
// content model uses for last_activity.
func TodayDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
