package domain

import (
	"time"

	dErrors "conduct/pkg/domain-errors"
)

// Day is a calendar date in the service's reference timezone, formatted
// YYYY-MM-DD. Two timestamps belong to the same Day iff they format to the
// same string in that zone. The ISO layout makes lexical comparison agree
// with chronological order.
type Day string

const dayLayout = "2006-01-02"

// ParseDay validates a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "day is required")
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid day %q, expected YYYY-MM-DD", s)
	}
	// Round-trip guard: time.Parse accepts some non-canonical forms.
	if t.Format(dayLayout) != s {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid day %q, expected YYYY-MM-DD", s)
	}
	return Day(s), nil
}

// DayOf truncates a timestamp to the calendar date it falls on in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	return Day(t.In(loc).Format(dayLayout))
}

func (d Day) String() string { return string(d) }

func (d Day) IsZero() bool { return d == "" }

func (d Day) Before(other Day) bool { return d < other }

func (d Day) After(other Day) bool { return d > other }

// Time returns midnight of the day in loc.
func (d Day) Time(loc *time.Location) time.Time {
	t, _ := time.ParseInLocation(dayLayout, string(d), loc)
	return t
}
