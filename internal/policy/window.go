package policy

import "time"

// DefaultWindowDays is how many days before an appointment it becomes locked.
const DefaultWindowDays = 2

// IsProtectedWindow reports whether an appointment on appointmentDate is too close to now
// to be modified or cancelled. The boundary is inclusive: an appointment exactly
// windowDays out is already protected.
//
// appointmentDate is expected to be the start of the calendar day in the business location
// (see CalendarDay).
func IsProtectedWindow(appointmentDate, now time.Time, windowDays int) bool {
	return !appointmentDate.After(now.AddDate(0, 0, windowDays))
}
