package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayName(t *testing.T) {
	monday := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Lunes", WeekdayName(monday, time.UTC))
	assert.Equal(t, "Domingo", WeekdayName(monday, time.FixedZone("UTC-11", -11*3600)))
	assert.Equal(t, "Sábado", WeekdayName(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), nil))
}

func TestSameDate(t *testing.T) {
	a := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b, time.UTC))
	assert.False(t, SameDate(b, c, time.UTC))
	assert.True(t, SameDate(b, c, time.FixedZone("UTC-3", -3*3600)))
}

func TestInMonthIsZeroBased(t *testing.T) {
	march := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	assert.True(t, InMonth(march, 2, 2024, time.UTC))
	assert.False(t, InMonth(march, 3, 2024, time.UTC))
	assert.False(t, InMonth(march, 2, 2023, time.UTC))
}

func TestAgeYears(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, AgeYears(now.AddDate(-10, 0, 0), now))
	assert.Equal(t, 9, AgeYears(now.AddDate(-10, 0, 3), now))
	assert.Equal(t, 0, AgeYears(now.AddDate(0, -6, 0), now))
}

func TestAgeYearsLeapDayApproximation(t *testing.T) {
	// 2016-10-18 to 2026-10-18 spans two leap days: 3652 days / 365.25 < 10.
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 9, AgeYears(time.Date(2016, 10, 18, 9, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 10, AgeYears(time.Date(2016, 10, 17, 9, 0, 0, 0, time.UTC), now))

	// 2014-06-01 to 2024-06-01 spans three: 3653 days.
	assert.Equal(t, 10, AgeYears(time.Date(2014, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAgeYearsZeroBirthDate(t *testing.T) {
	// An unset fecha_nacimiento is year 1; the result stays proportional
	// instead of saturating at the maximum duration.
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2023, AgeYears(time.Time{}, now))
}
