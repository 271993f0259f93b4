// Package timeutil owns the wall-clock conventions shared by the attendance
// records: calendar dates as 2006-01-02 strings, times of day as 12-hour
// 03:04 PM strings, and the elapsed-hours arithmetic between them.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "03:04 PM"
)

// Clock is the source of "now" for attendance logging. The production clock
// reads a single fixed zone; tests pin it.
type Clock interface {
	Now() time.Time
}

type zoneClock struct {
	loc *time.Location
}

// NewClock returns a Clock reading the given IANA zone.
func NewClock(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &zoneClock{loc: loc}, nil
}

func (c *zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// ParseTimeOfDay parses a 03:04 PM string.
func ParseTimeOfDay(value string) (time.Time, error) {
	t, err := time.Parse(TimeOfDayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return t, nil
}

// ElapsedHours combines date with the two times of day and returns the
// elapsed hours rounded to 2 decimals. When the leaving time of day
// numerically precedes the arrival time of day the session crossed midnight,
// so 24 hours are added to the leaving instant first; wrapped reports that
// correction. Equal times yield 0.0, not 24.0. The result is never negative
// for well-formed inputs.
func ElapsedHours(date time.Time, arrival, leaving string) (hours float64, wrapped bool, err error) {
	arrivalTOD, err := ParseTimeOfDay(arrival)
	if err != nil {
		return 0, false, err
	}
	leavingTOD, err := ParseTimeOfDay(leaving)
	if err != nil {
		return 0, false, err
	}

	arrivalAt := time.Date(date.Year(), date.Month(), date.Day(),
		arrivalTOD.Hour(), arrivalTOD.Minute(), 0, 0, date.Location())
	leavingAt := time.Date(date.Year(), date.Month(), date.Day(),
		leavingTOD.Hour(), leavingTOD.Minute(), 0, 0, date.Location())

	if leavingAt.Before(arrivalAt) {
		leavingAt = leavingAt.Add(24 * time.Hour)
		wrapped = true
	}

	hours = Round2(leavingAt.Sub(arrivalAt).Hours())
	return hours, wrapped, nil
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
