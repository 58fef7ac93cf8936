package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ist = time.FixedZone("IST", 5*3600+30*60)

func TestRules_ProtectedUsesLocation(t *testing.T) {
	// 01:30 on 11 June in IST
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	date := day(2025, 6, 13)

	inIST := Rules{WindowDays: 2, Hours: DefaultBusinessHours, Location: ist}
	inUTC := Rules{WindowDays: 2, Hours: DefaultBusinessHours, Location: time.UTC}

	assert.True(t, inIST.Protected(date, now))
	assert.False(t, inUTC.Protected(date, now))
}

func TestRules_InPast(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	rules := Rules{WindowDays: 2, Hours: DefaultBusinessHours, Location: ist}

	assert.True(t, rules.InPast(day(2025, 6, 11), TimeOfDay{Hour: 1, Minute: 0}, now))
	assert.False(t, rules.InPast(day(2025, 6, 11), TimeOfDay{Hour: 2, Minute: 0}, now))
}

func TestRules_TodayAndCutoff(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	rules := Rules{Location: ist}

	assert.Equal(t, day(2025, 6, 11), rules.Today(now))

	cutoffDay, tod := rules.ElapsedCutoff(now)
	assert.Equal(t, day(2025, 6, 11), cutoffDay)
	assert.Equal(t, TimeOfDay{Hour: 1, Minute: 30}, tod)
}

func TestRules_NilLocationIsUTC(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, day(2025, 6, 10), Rules{}.Today(now))
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, DefaultWindowDays, rules.WindowDays)
	assert.Equal(t, DefaultBusinessHours, rules.Hours)
	assert.Equal(t, time.UTC, rules.Location)
}
