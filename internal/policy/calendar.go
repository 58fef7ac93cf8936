package policy

import (
	"errors"
	"time"
)

// DateLayout is the wire format of a calendar day.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

// ParseDate parses "YYYY-MM-DD" into UTC midnight of that day, which is how date
// columns are stored and compared.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// FormatDate renders the calendar day of d.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// CalendarDay returns midnight in loc of the calendar day carried by date, ignoring
// date's own location.
func CalendarDay(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

// SlotInstant is the absolute instant of a (date, time of day) pair in loc.
func SlotInstant(date time.Time, tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour, tod.Minute, 0, 0, loc)
}

// Today returns the calendar day of now in loc, in the UTC-midnight storage form.
func Today(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ElapsedCutoff splits now, rounded up to the next whole minute, into the storage day
// and time of day in loc. A slot (d, t) has elapsed iff d < day, or d == day and t < tod,
// which agrees with IsElapsed.
func ElapsedCutoff(now time.Time, loc *time.Location) (day time.Time, tod TimeOfDay) {
	local := now.In(loc)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		local = local.Add(time.Minute)
	}
	return Today(local, loc), TimeOfDay{Hour: local.Hour(), Minute: local.Minute()}
}

// IsElapsed reports whether the slot instant lies strictly before now.
func IsElapsed(date time.Time, tod TimeOfDay, now time.Time, loc *time.Location) bool {
	return SlotInstant(date, tod, loc).Before(now)
}
