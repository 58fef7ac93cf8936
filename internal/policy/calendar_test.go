package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-06-10", FormatDate(d))

	_, err = ParseDate("10/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestElapsedCutoff(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 6, 10, 20, 45, 30, 0, time.UTC)

	d, tod := ElapsedCutoff(now, loc)
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "02:16", tod.String())
}

func TestElapsedCutoff_MatchesIsElapsed(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantDay time.Time
		wantTOD string
	}{
		{name: "on the minute", now: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), wantDay: day(2025, 1, 10), wantTOD: "09:00"},
		{name: "seconds past", now: time.Date(2025, 1, 10, 9, 0, 30, 0, time.UTC), wantDay: day(2025, 1, 10), wantTOD: "09:01"},
		{name: "nanoseconds past", now: time.Date(2025, 1, 10, 9, 0, 0, 1, time.UTC), wantDay: day(2025, 1, 10), wantTOD: "09:01"},
		{name: "rolls into next day", now: time.Date(2025, 1, 10, 23, 59, 30, 0, time.UTC), wantDay: day(2025, 1, 11), wantTOD: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, tod := ElapsedCutoff(tt.now, time.UTC)
			assert.Equal(t, tt.wantDay, d)
			assert.Equal(t, tt.wantTOD, tod.String())

			slotDay := day(tt.now.Year(), tt.now.Month(), tt.now.Day())
			slot := TimeOfDay{Hour: tt.now.Hour(), Minute: tt.now.Minute()}
			cutoffSaysElapsed := slotDay.Before(d) || (slotDay.Equal(d) && slot.String() < tod.String())
			assert.Equal(t, IsElapsed(slotDay, slot, tt.now, time.UTC), cutoffSaysElapsed)
		})
	}
}

func TestIsElapsed(t *testing.T) {
	now := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsElapsed(day(2025, 6, 10), MustTimeOfDay("14:00"), now, time.UTC))
	assert.False(t, IsElapsed(day(2025, 6, 11), MustTimeOfDay("00:00"), now, time.UTC))
	assert.False(t, IsElapsed(day(2025, 6, 12), MustTimeOfDay("10:00"), now, time.UTC))
}
