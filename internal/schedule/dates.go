package schedule

import (
	"fmt"
	"time"
)

// FirstWeekdayOnOrAfter returns the first date on or after d that falls on
// the given weekday. The time of day is preserved.
func FirstWeekdayOnOrAfter(d time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// DayOfNextMonth returns the given day of the month following d, at midnight
// in d's location. December rolls over into January.
func DayOfNextMonth(d time.Time, day int) time.Time {
	return time.Date(d.Year(), d.Month()+1, day, 0, 0, 0, 0, d.Location())
}

// SeasonKey names a season by the years it spans, e.g. "2026-2027".
func SeasonKey(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}
