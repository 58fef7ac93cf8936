package policy

import (
	"errors"
	"fmt"
	"time"
)

// TimeLayout is the wire format of a time of day.
const TimeLayout = "15:04"

var (
	ErrInvalidTimeOfDay     = errors.New("invalid time format, use HH:MM")
	ErrInvalidBusinessHours = errors.New("business hours must open before they close")
)

// TimeOfDay is a wall-clock time with minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustTimeOfDay is ParseTimeOfDay for constants.
func MustTimeOfDay(s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		panic(fmt.Sprintf("policy: bad time of day %q", s))
	}
	return tod
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// BusinessHours is an inclusive [Open, Close] range.
type BusinessHours struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// DefaultBusinessHours is 10:00 to 17:00.
var DefaultBusinessHours = BusinessHours{
	Open:  TimeOfDay{Hour: 10},
	Close: TimeOfDay{Hour: 17},
}

// NewBusinessHours builds hours from "HH:MM" strings.
func NewBusinessHours(open, close string) (BusinessHours, error) {
	o, err := ParseTimeOfDay(open)
	if err != nil {
		return BusinessHours{}, err
	}
	c, err := ParseTimeOfDay(close)
	if err != nil {
		return BusinessHours{}, err
	}
	if !o.Before(c) {
		return BusinessHours{}, ErrInvalidBusinessHours
	}
	return BusinessHours{Open: o, Close: c}, nil
}

// Contains reports whether Open <= t <= Close.
func (h BusinessHours) Contains(t TimeOfDay) bool {
	m := t.Minutes()
	return m >= h.Open.Minutes() && m <= h.Close.Minutes()
}

// IsWithinBusinessHours checks t against DefaultBusinessHours.
func IsWithinBusinessHours(t TimeOfDay) bool {
	return DefaultBusinessHours.Contains(t)
}
