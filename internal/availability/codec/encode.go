package codec

import (
	"math"
	"sort"

	"github.com/praxisdesk/availability/internal/availability/domain"
)

// centihoursPerMinute converts window durations into hundredths of an hour,
// the granularity windows are grouped at. Two windows whose durations agree
// to 1/100 hour encode into the same recurring entry.
const centihoursPerMinute = 100.0 / 60.0

// windowKey identifies the first grouping pass: days sharing an identical
// single window collapse into one day set.
type windowKey struct {
	startMinute int
	durCenti    int
}

// entryKey identifies the second grouping pass: start times sharing an
// identical day set and duration collapse into one entry.
type entryKey struct {
	dayMask  uint8 // bit i set = domain.Weekdays[i] present
	durCenti int
}

// Encode produces the compact extension block for one configuration scope.
// Grouping is keyed on value equality, so equivalent week schedules encode
// to the same entry set regardless of iteration order.
func Encode(serviceType string, cfg *domain.AvailabilityConfig) Extension {
	block := Extension{URL: URLAvailability}

	if serviceType != "" {
		block.Extensions = append(block.Extensions, codeExt(URLServiceType, serviceType))
	}

	if cfg.DurationValue > 0 {
		block.Extensions = append(block.Extensions, durationExt(URLDuration, DurationValue{
			Value: cfg.DurationValue,
			Unit:  string(cfg.DurationUnit),
		}))
	}

	block.Extensions = append(block.Extensions, encodeRecurring(cfg.Week)...)

	if cfg.BufferBeforeMin > 0 {
		block.Extensions = append(block.Extensions, durationExt(URLBufferBefore, minutesValue(cfg.BufferBeforeMin)))
	}
	if cfg.BufferAfterMin > 0 {
		block.Extensions = append(block.Extensions, durationExt(URLBufferAfter, minutesValue(cfg.BufferAfterMin)))
	}
	if cfg.AlignmentIntervalMin > 0 {
		block.Extensions = append(block.Extensions, durationExt(URLAlignmentInterval, minutesValue(cfg.AlignmentIntervalMin)))
		if cfg.AlignmentOffsetMin > 0 {
			block.Extensions = append(block.Extensions, durationExt(URLAlignmentOffset, minutesValue(cfg.AlignmentOffsetMin)))
		}
	}

	for _, limit := range cfg.BookingLimits {
		if !limit.IsMeaningful() {
			continue
		}
		block.Extensions = append(block.Extensions, Extension{
			URL: URLBookingLimit,
			Extensions: []Extension{
				intExt(URLLimitCount, limit.MaxCount),
				intExt(URLLimitPeriod, limit.PeriodLength),
				codeExt(URLLimitPeriodUnit, string(limit.PeriodUnit)),
			},
		})
	}

	if cfg.Timezone != "" {
		block.Extensions = append(block.Extensions, codeExt(URLTimezone, cfg.Timezone))
	}

	return block
}

// encodeRecurring compacts a week schedule into recurring entries via two
// grouping passes over explicit composite keys.
func encodeRecurring(week domain.WeekSchedule) []Extension {
	// Pass 1: flatten (day, start, duration) tuples, accumulating the day
	// set per identical window.
	dayMasks := make(map[windowKey]uint8)
	for i, day := range domain.Weekdays {
		for _, w := range week[day].EffectiveWindows() {
			key := windowKey{
				startMinute: int(w.StartMinute),
				durCenti:    int(math.Round(float64(w.DurationMin) * centihoursPerMinute)),
			}
			dayMasks[key] |= 1 << uint(i)
		}
	}

	// Pass 2: accumulate the start-time set per identical (day set, duration).
	startSets := make(map[entryKey][]int)
	for key, mask := range dayMasks {
		ek := entryKey{dayMask: mask, durCenti: key.durCenti}
		startSets[ek] = append(startSets[ek], key.startMinute)
	}

	keys := make([]entryKey, 0, len(startSets))
	for ek := range startSets {
		keys = append(keys, ek)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].dayMask != keys[j].dayMask {
			return keys[i].dayMask < keys[j].dayMask
		}
		return keys[i].durCenti < keys[j].durCenti
	})

	entries := make([]Extension, 0, len(keys))
	for _, ek := range keys {
		starts := startSets[ek]
		sort.Ints(starts)

		entry := Extension{URL: URLRecurring}
		for i, day := range domain.Weekdays {
			if ek.dayMask&(1<<uint(i)) != 0 {
				entry.Extensions = append(entry.Extensions, codeExt(URLDay, codeForDay(day)))
			}
		}
		for _, start := range starts {
			entry.Extensions = append(entry.Extensions, timeExt(URLStart, domain.TimeOfDay(start)))
		}
		entry.Extensions = append(entry.Extensions, durationExt(URLDuration, centiValue(ek.durCenti)))
		entries = append(entries, entry)
	}
	return entries
}

// minutesValue keeps plain minute counts in their source unit.
func minutesValue(minutes int) DurationValue {
	return DurationValue{Value: float64(minutes), Unit: string(domain.UnitMinutes)}
}

// centiValue renders a centihour duration in whole hours when exact, in
// minutes otherwise.
func centiValue(centi int) DurationValue {
	if centi%100 == 0 {
		return DurationValue{Value: float64(centi / 100), Unit: string(domain.UnitHours)}
	}
	return DurationValue{Value: math.Round(float64(centi) * 60.0 / 100.0), Unit: string(domain.UnitMinutes)}
}

// EncodeAll serializes a schedule's default configuration and overrides as
// one block per scope, default first, overrides in service-type order.
func EncodeAll(def *domain.AvailabilityConfig, overrides []domain.ServiceOverride) []Extension {
	var blocks []Extension
	if def != nil {
		blocks = append(blocks, Encode("", def))
	}
	sorted := make([]domain.ServiceOverride, len(overrides))
	copy(sorted, overrides)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ServiceType < sorted[j].ServiceType })
	for _, o := range sorted {
		blocks = append(blocks, Encode(o.ServiceType, o.Config))
	}
	return blocks
}
