package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpandSlots materializes the default configuration's weekly windows over a
// date range as virtual free slots for calendar display.
//
// Day boundaries are taken at local midnight; every calendar day fully or
// partially inside [from, to] is considered. The generator only expands the
// declared windows: buffers, alignment grids, and booking limits are
// enforced by the store's availability search, never recomputed here.
func ExpandSlots(cfg *AvailabilityConfig, scheduleID uuid.UUID, from, to time.Time) []Slot {
	if cfg == nil || !to.After(from) {
		return nil
	}

	loc := from.Location()
	if cfg.Timezone != "" {
		if tz, err := time.LoadLocation(cfg.Timezone); err == nil {
			loc = tz
		}
	}

	slots := make([]Slot, 0)
	last := StartOfDay(to.In(loc))
	for day := StartOfDay(from.In(loc)); !day.After(last); day = day.AddDate(0, 0, 1) {
		ds := cfg.Week[day.Weekday()]
		for _, w := range ds.EffectiveWindows() {
			slots = append(slots, NewVirtualSlot(scheduleID, w.On(day)))
		}
	}
	return slots
}
