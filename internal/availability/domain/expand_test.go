package domain_test

import (
	"testing"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandSlots_NoDefaultConfig(t *testing.T) {
	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)

	assert.Empty(t, domain.ExpandSlots(nil, uuid.New(), from, to))
}

func TestExpandSlots_WeekdayWindows(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.Week.AddWindow(time.Monday, domain.TimeWindow{StartMinute: 9 * 60, DurationMin: 180})
	cfg.Week.AddWindow(time.Monday, domain.TimeWindow{StartMinute: 14 * 60, DurationMin: 120})
	cfg.Week.AddWindow(time.Wednesday, domain.TimeWindow{StartMinute: 9 * 60, DurationMin: 480})

	scheduleID := uuid.New()
	// 2026-03-09 is a Monday.
	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6) // through Sunday

	slots := domain.ExpandSlots(cfg, scheduleID, from, to)
	require.Len(t, slots, 3)

	for _, s := range slots {
		assert.True(t, s.Virtual())
		assert.Equal(t, domain.SlotFree, s.Status)
		assert.Equal(t, scheduleID, s.ScheduleID)
	}

	assert.Equal(t, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), slots[0].Interval.Start)
	assert.Equal(t, time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC), slots[1].Interval.Start)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), slots[2].Interval.Start)
	assert.Equal(t, time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC), slots[2].Interval.End)
}

func TestExpandSlots_PartialDaysIncluded(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.Week.EnableDay(time.Tuesday)

	// Range starts mid-Tuesday; the day still expands in full.
	from := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	to := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)

	slots := domain.ExpandSlots(cfg, uuid.New(), from, to)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), slots[0].Interval.Start)
}

func TestExpandSlots_EmptyRange(t *testing.T) {
	cfg := domain.NewAvailabilityConfig()
	cfg.Week.EnableDay(time.Monday)
	from := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	assert.Empty(t, domain.ExpandSlots(cfg, uuid.New(), from, from))
}
