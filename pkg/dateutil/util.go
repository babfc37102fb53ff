package dateutil

import "time"

// DateLayout is the layout of period anchors and assignment dates.
const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// BeginningOfWeek returns the Monday of the ISO week containing t.
func BeginningOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return BeginningOfDay(t).AddDate(0, 0, -offset)
}

func EndOfWeek(t time.Time) time.Time {
	return BeginningOfWeek(t).AddDate(0, 0, 6)
}

func BeginningOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func EndOfMonth(t time.Time) time.Time {
	return BeginningOfMonth(t).AddDate(0, 1, -1)
}

// Date formats t as a calendar date in its own location.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
