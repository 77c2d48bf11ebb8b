package utils

import (
	"fmt"
	"time"
)

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	return t
}

// ParseFlexibleDate accepts the two date formats timesheet uploads arrive in:
// 2006-01-02 and 1/2/06.
func ParseFlexibleDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	layouts := []string{"2006-01-02", "1/2/06"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or M/D/YY)", s)
}

// ParseUSDate accepts cargo manifest dates: 01/02/2006 or 1/2/06.
func ParseUSDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	layouts := []string{"01/02/2006", "1/2/06"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s (expected MM/DD/YYYY or M/D/YY)", s)
}

// ParseClockTime combines a base date with a 24-hour HH:MM time string.
func ParseClockTime(baseDate time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %s (expected HH:MM)", timeStr)
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), t.Hour(), t.Minute(), 0, 0, baseDate.Location()), nil
}

// DateOf truncates an instant to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthKey formats a date as its YYYY-MM bucket.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
