package domain_test

import (
	"testing"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewWeekSchedule_AllDisabled(t *testing.T) {
	ws := domain.NewWeekSchedule()

	assert.Len(t, ws, 7)
	for day, ds := range ws {
		assert.False(t, ds.Enabled, "day %s", day)
		assert.Empty(t, ds.Windows, "day %s", day)
	}
	assert.Empty(t, ws.EnabledDays())
}

func TestDaySchedule_EffectiveWindows(t *testing.T) {
	disabled := domain.DaySchedule{}
	assert.Nil(t, disabled.EffectiveWindows())

	// Enabled without explicit windows implies the 09:00-17:00 default.
	enabled := domain.DaySchedule{Enabled: true}
	windows := enabled.EffectiveWindows()
	assert.Equal(t, []domain.TimeWindow{domain.DefaultWindow}, windows)
	assert.Equal(t, "09:00", windows[0].StartMinute.String())
	assert.Equal(t, 480, windows[0].DurationMin)

	explicit := domain.DaySchedule{
		Enabled: true,
		Windows: []domain.TimeWindow{{StartMinute: 10 * 60, DurationMin: 120}},
	}
	assert.Equal(t, explicit.Windows, explicit.EffectiveWindows())
}

func TestWeekSchedule_AddWindow(t *testing.T) {
	ws := domain.NewWeekSchedule()
	ws.AddWindow(time.Wednesday, domain.TimeWindow{StartMinute: 8 * 60, DurationMin: 240})

	assert.True(t, ws[time.Wednesday].Enabled)
	assert.Len(t, ws[time.Wednesday].Windows, 1)
	assert.Equal(t, []time.Weekday{time.Wednesday}, ws.EnabledDays())
}

func TestWeekSchedule_EnabledDays_CanonicalOrder(t *testing.T) {
	ws := domain.NewWeekSchedule()
	ws.EnableDay(time.Sunday)
	ws.EnableDay(time.Monday)
	ws.EnableDay(time.Friday)

	assert.Equal(t, []time.Weekday{time.Monday, time.Friday, time.Sunday}, ws.EnabledDays())
}

func TestTimeWindow_On(t *testing.T) {
	w := domain.TimeWindow{StartMinute: 9*60 + 30, DurationMin: 45}
	day := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	iv := w.On(day)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC), iv.Start)
	assert.Equal(t, time.Date(2026, 3, 10, 10, 15, 0, 0, time.UTC), iv.End)
}

func TestAvailabilityConfig_AddBookingLimit(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()

	// Non-positive counts mean "no limit" and are dropped, never stored.
	cfg.AddBookingLimit(domain.BookingLimit{MaxCount: 0, PeriodLength: 1, PeriodUnit: domain.PeriodDay})
	cfg.AddBookingLimit(domain.BookingLimit{MaxCount: -2, PeriodLength: 1, PeriodUnit: domain.PeriodWeek})
	assert.Empty(t, cfg.BookingLimits)

	cfg.AddBookingLimit(domain.BookingLimit{MaxCount: 8, PeriodLength: 1, PeriodUnit: domain.PeriodDay})
	assert.Len(t, cfg.BookingLimits, 1)
}

func TestAvailabilityConfig_SlotDurationMin(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.DurationValue = 1.5
	cfg.DurationUnit = domain.UnitHours
	assert.Equal(t, 90, cfg.SlotDurationMin())

	cfg.DurationValue = 45
	cfg.DurationUnit = domain.UnitMinutes
	assert.Equal(t, 45, cfg.SlotDurationMin())
}
