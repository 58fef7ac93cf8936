package policy

import "time"

// Rules bundles the configured policy so callers do not thread each knob separately.
type Rules struct {
	WindowDays int
	Hours      BusinessHours
	Location   *time.Location
}

// DefaultRules uses a two day window, 10:00-17:00 and UTC.
func DefaultRules() Rules {
	return Rules{
		WindowDays: DefaultWindowDays,
		Hours:      DefaultBusinessHours,
		Location:   time.UTC,
	}
}

// Protected reports whether a stored date is inside the protected window at now.
func (r Rules) Protected(date, now time.Time) bool {
	return IsProtectedWindow(CalendarDay(date, r.loc()), now, r.WindowDays)
}

// InPast reports whether the slot has already started at now.
func (r Rules) InPast(date time.Time, tod TimeOfDay, now time.Time) bool {
	return IsElapsed(date, tod, now, r.loc())
}

// ElapsedCutoff is ElapsedCutoff in the configured location.
func (r Rules) ElapsedCutoff(now time.Time) (time.Time, TimeOfDay) {
	return ElapsedCutoff(now, r.loc())
}

// Today is the current calendar day in the configured location.
func (r Rules) Today(now time.Time) time.Time {
	return Today(now, r.loc())
}

func (r Rules) loc() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}
