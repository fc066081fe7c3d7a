package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// ParseDate parses an ISO date (YYYY-MM-DD) in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDate formats a time as an ISO date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp formats a time for cache/fetch timestamps in responses.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// QuarterLabel renders a statement end date as e.g. "2024-Q3".
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())+2)/3)
}

func ToPointer[T any](value T) *T {
	return &value
}
