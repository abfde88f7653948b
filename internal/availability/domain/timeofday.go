package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadTimeOfDay = errors.New("time of day must be HH:MM between 00:00 and 23:59")
	ErrBadDuration  = errors.New("duration must be positive")
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// TimeOfDay is a minute-of-day value in [0, MinutesPerDay).
type TimeOfDay int

// NewTimeOfDay creates a time of day from an hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrBadTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay parses a "HH:MM" wall-clock string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, ErrBadTimeOfDay
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrBadTimeOfDay
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrBadTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String formats the time of day as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// IsValid reports whether the value lies within a single day.
func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t < MinutesPerDay
}

// At anchors the time of day on the calendar day of date, in date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return StartOfDay(date).Add(time.Duration(t) * time.Minute)
}

// StartOfDay returns local midnight of the given instant.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Weekdays is the canonical day ordering used whenever windows are
// serialized or grouped.
var Weekdays = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// DurationUnit identifies the unit a persisted duration value is expressed in.
type DurationUnit string

const (
	UnitMinutes DurationUnit = "min"
	UnitHours   DurationUnit = "h"
)

// ToMinutes normalizes a duration value to whole minutes regardless of unit.
func (u DurationUnit) ToMinutes(value float64) int {
	if u == UnitHours {
		return int(value*60 + 0.5)
	}
	return int(value + 0.5)
}

// FormatMinutes renders a minute count for CLI output, e.g. "1h30m" or "45m".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
