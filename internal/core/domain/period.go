package domain

import "time"

const (
	// DateLayout renders settlement dates and week starts in reports.
	DateLayout = "2006-01-02"
	// MonthLayout renders month keys in reports.
	MonthLayout = "2006-01"
)

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	day := DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the YYYY-MM key of t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}
