package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
)

var dayNames = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

func parseDay(code string) (time.Weekday, error) {
	day, ok := dayNames[strings.ToLower(code)]
	if !ok {
		return 0, fmt.Errorf("invalid day %q (valid: mon, tue, wed, thu, fri, sat, sun)", code)
	}
	return day, nil
}

// parseWindow parses "HH:MM-HH:MM" into a time window. An end at or before
// the start wraps past midnight.
func parseWindow(s string) (domain.TimeWindow, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return domain.TimeWindow{}, fmt.Errorf("invalid window %q, use HH:MM-HH:MM", s)
	}
	start, err := domain.ParseTimeOfDay(parts[0])
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("invalid window start: %w", err)
	}
	end, err := domain.ParseTimeOfDay(parts[1])
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("invalid window end: %w", err)
	}

	dur := int(end) - int(start)
	if dur <= 0 {
		dur += domain.MinutesPerDay
	}
	return domain.TimeWindow{StartMinute: start, DurationMin: dur}, nil
}

// parseDuration parses a slot duration like "30m", "45min", or "1.5h".
func parseDuration(s string) (float64, domain.DurationUnit, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	unit := domain.UnitMinutes
	switch {
	case strings.HasSuffix(s, "min"):
		s = strings.TrimSuffix(s, "min")
	case strings.HasSuffix(s, "m"):
		s = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "h"):
		s = strings.TrimSuffix(s, "h")
		unit = domain.UnitHours
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value <= 0 {
		return 0, "", fmt.Errorf("invalid duration %q, use forms like 30m or 1.5h", s)
	}
	return value, unit, nil
}

// parseLimit parses a booking limit like "5/day", "20/week", or "8/2w".
func parseLimit(s string) (domain.BookingLimit, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return domain.BookingLimit{}, fmt.Errorf("invalid limit %q, use COUNT/PERIOD like 5/day or 8/2w", s)
	}

	count, err := strconv.Atoi(parts[0])
	if err != nil || count < 1 {
		return domain.BookingLimit{}, fmt.Errorf("invalid limit count %q", parts[0])
	}

	length, unit, err := parsePeriod(parts[1])
	if err != nil {
		return domain.BookingLimit{}, err
	}
	return domain.BookingLimit{MaxCount: count, PeriodLength: length, PeriodUnit: unit}, nil
}

func parsePeriod(s string) (int, domain.PeriodUnit, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "day", "d":
		return 1, domain.PeriodDay, nil
	case "week", "w":
		return 1, domain.PeriodWeek, nil
	case "month", "mo":
		return 1, domain.PeriodMonth, nil
	}

	// Numeric prefix with a unit suffix, like 2w or 3d.
	for suffix, unit := range map[string]domain.PeriodUnit{
		"d":  domain.PeriodDay,
		"w":  domain.PeriodWeek,
		"mo": domain.PeriodMonth,
	} {
		if strings.HasSuffix(s, suffix) {
			n, err := strconv.Atoi(strings.TrimSuffix(s, suffix))
			if err == nil && n >= 1 {
				return n, unit, nil
			}
		}
	}
	return 0, "", fmt.Errorf("invalid period %q, use day, week, month, or forms like 2w", s)
}
