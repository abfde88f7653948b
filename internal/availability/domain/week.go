package domain

import "time"

// DefaultWindow is substituted when an enabled day carries no explicit
// window (09:00-17:00).
var DefaultWindow = TimeWindow{StartMinute: 9 * 60, DurationMin: 8 * 60}

// TimeWindow is a recurring within-day window: a start minute of day plus a
// positive duration. Windows anchored near the end of the day may extend
// past midnight in the persisted recurring-rule form; the codec normalizes
// that wrap-around, so in-memory windows always carry the full duration.
type TimeWindow struct {
	StartMinute TimeOfDay
	DurationMin int
}

// EndMinute returns the exclusive end as minutes from the day's midnight.
// For windows wrapping past midnight this exceeds MinutesPerDay.
func (w TimeWindow) EndMinute() int {
	return int(w.StartMinute) + w.DurationMin
}

// On materializes the window on the calendar day of date.
func (w TimeWindow) On(date time.Time) Interval {
	start := w.StartMinute.At(date)
	return Interval{Start: start, End: start.Add(time.Duration(w.DurationMin) * time.Minute)}
}

// DaySchedule is one weekday's availability: disabled days carry no windows,
// enabled days carry one or more.
type DaySchedule struct {
	Enabled bool
	Windows []TimeWindow
}

// EffectiveWindows returns the windows to expand for the day. An enabled day
// without explicit windows implies exactly one default window.
func (d DaySchedule) EffectiveWindows() []TimeWindow {
	if !d.Enabled {
		return nil
	}
	if len(d.Windows) == 0 {
		return []TimeWindow{DefaultWindow}
	}
	return d.Windows
}

// WeekSchedule maps the seven weekdays to their schedules. Iteration for
// serialization and grouping always follows the canonical Weekdays order.
type WeekSchedule map[time.Weekday]DaySchedule

// NewWeekSchedule returns a week with all seven days disabled.
func NewWeekSchedule() WeekSchedule {
	ws := make(WeekSchedule, len(Weekdays))
	for _, day := range Weekdays {
		ws[day] = DaySchedule{}
	}
	return ws
}

// EnableDay marks a day enabled without touching its windows.
func (ws WeekSchedule) EnableDay(day time.Weekday) {
	d := ws[day]
	d.Enabled = true
	ws[day] = d
}

// AddWindow enables the day and appends a window to it.
func (ws WeekSchedule) AddWindow(day time.Weekday, w TimeWindow) {
	d := ws[day]
	d.Enabled = true
	d.Windows = append(d.Windows, w)
	ws[day] = d
}

// EnabledDays returns the enabled weekdays in canonical order.
func (ws WeekSchedule) EnabledDays() []time.Weekday {
	var days []time.Weekday
	for _, day := range Weekdays {
		if ws[day].Enabled {
			days = append(days, day)
		}
	}
	return days
}
