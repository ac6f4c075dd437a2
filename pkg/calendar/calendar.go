// Package calendar holds the date arithmetic shared by the clinic services.
package calendar

import (
	"math"
	"time"
)

// DaysPerYear is the average year length used for ages.
const DaysPerYear = 365.25

const secondsPerDay = 24 * 60 * 60

var weekdayNames = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
}

// WeekdayName returns the Spanish name of t's weekday in loc.
func WeekdayName(t time.Time, loc *time.Location) string {
	return weekdayNames[in(t, loc).Weekday()]
}

// SameDate reports whether a and b fall on the same calendar day in loc,
// ignoring the time of day.
func SameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := in(a, loc).Date()
	by, bm, bd := in(b, loc).Date()
	return ay == by && am == bm && ad == bd
}

// InMonth reports whether t falls in the zero-based month of year in loc.
func InMonth(t time.Time, month, year int, loc *time.Location) bool {
	lt := in(t, loc)
	return int(lt.Month())-1 == month && lt.Year() == year
}

// AgeYears is the number of whole days between birth and now divided by
// 365.25, floored. The approximation can report one year less on a birthday
// when the span holds fewer leap days than the average assumes.
func AgeYears(birth, now time.Time) int {
	days := (now.Unix() - birth.Unix()) / secondsPerDay
	return int(math.Floor(float64(days) / DaysPerYear))
}

func in(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}
