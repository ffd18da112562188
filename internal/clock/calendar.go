package clock

import "time"

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// Calendar answers calendar-day questions in a single timezone.
// Calendar dates are represented as midnight UTC of that date, whatever the Location.
type Calendar struct {
	Location *time.Location
}

// NewCalendar returns a Calendar for loc; nil means UTC.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Location: loc}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Today returns the calendar date containing now.
func (c Calendar) Today(now time.Time) time.Time {
	local := now.In(c.loc())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns the instant local midnight begins on date.
func (c Calendar) StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.loc()).UTC()
}

// AddDays shifts a calendar date by n days. AddDate keeps month and year
// boundaries right; there is no DST on UTC-midnight dates.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// DueAt returns the instant a card scheduled interval days after now becomes due:
// the start of the target calendar day.
func (c Calendar) DueAt(now time.Time, interval int) time.Time {
	return c.StartOfDay(AddDays(c.Today(now), interval))
}

// FormatDate renders a calendar date for storage.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate parses a stored calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// ParseLocation resolves a timezone name, falling back to UTC.
func ParseLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
