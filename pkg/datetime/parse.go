// Package datetime provides date and time utility functions.
package datetime

import (
	"math"
	"time"

	"github.com/iwvelando/billing-calc/pkg/constants"
)

const (
	// DateLayout is the format expected for due dates.
	DateLayout = constants.DateLayout

	// MonthLayout is the format expected for reference months.
	MonthLayout = constants.MonthLayout

	hoursPerDay = 24
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// NoonUTC returns 12:00 UTC on the calendar date of t as seen in t's own
// location.
func NoonUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// ParseDueDate parses a YYYY-MM-DD due date and pins it to noon UTC.
func ParseDueDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return NoonUTC(t), nil
}

// ParseReferenceMonth parses a YYYY-MM reference month.
func ParseReferenceMonth(value string) (time.Time, error) {
	return time.Parse(MonthLayout, value)
}

// OverdueDays returns the whole days elapsed from noon UTC on the due date
// to the evaluation instant, floored and never negative. An evaluation less
// than 24 hours after due noon yields 0.
func OverdueDays(due, evaluation time.Time) int {
	elapsed := evaluation.Sub(NoonUTC(due))
	days := int(math.Floor(elapsed.Hours() / hoursPerDay))
	if days < 0 {
		return 0
	}
	return days
}

// MonthReference formats the month and year of t as MM/YYYY.
func MonthReference(t time.Time) string {
	return t.Format(constants.ReferenceLayout)
}

// AddMonthClamped moves t forward by the given months, keeping the day of
// month unless the target month is shorter, in which case the last day is used.
// 2025-01-31 plus one month is 2025-02-28, not March 3rd.
func AddMonthClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := DaysInMonth(firstOfTarget)
	if d > lastDay {
		d = lastDay
	}
	return firstOfTarget.AddDate(0, 0, d-1)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextDueDate returns the YYYY-MM-DD due date one month after the given one,
// clamped to the end of the following month.
func NextDueDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date, err
	}
	return AddMonthClamped(t, 1).Format(DateLayout), nil
}

// NextReferenceMonth returns the YYYY-MM month following the given one.
func NextReferenceMonth(month string) (string, error) {
	t, err := ParseReferenceMonth(month)
	if err != nil {
		return month, err
	}
	return t.AddDate(0, 1, 0).Format(MonthLayout), nil
}
