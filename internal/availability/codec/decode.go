package codec

import (
	"errors"
	"fmt"

	"github.com/praxisdesk/availability/internal/availability/domain"
)

var (
	ErrNotAvailabilityBlock = errors.New("extension is not an availability block")
	ErrDuplicateDefault     = errors.New("schedule carries more than one default availability block")
)

// Decode turns one availability block into a typed configuration. The
// returned service type is empty for the default scope.
func Decode(block Extension) (string, *domain.AvailabilityConfig, error) {
	if block.URL != URLAvailability {
		return "", nil, ErrNotAvailabilityBlock
	}

	cfg := domain.NewAvailabilityConfig()

	serviceType := ""
	if st, ok := block.child(URLServiceType); ok && st.ValueCode != nil {
		serviceType = *st.ValueCode
	}

	if d, ok := block.child(URLDuration); ok && d.ValueDuration != nil {
		cfg.DurationValue = d.ValueDuration.Value
		cfg.DurationUnit = domain.DurationUnit(d.ValueDuration.Unit)
	}

	for _, entry := range block.children(URLRecurring) {
		if err := decodeRecurring(entry, cfg.Week); err != nil {
			return "", nil, err
		}
	}

	// Malformed input can enable a day without giving it any window; the
	// default window is substituted so the day stays usable.
	for _, day := range domain.Weekdays {
		ds := cfg.Week[day]
		if ds.Enabled && len(ds.Windows) == 0 {
			ds.Windows = []domain.TimeWindow{domain.DefaultWindow}
			cfg.Week[day] = ds
		}
	}

	if b, ok := block.child(URLBufferBefore); ok && b.ValueDuration != nil {
		cfg.BufferBeforeMin = b.ValueDuration.Minutes()
	}
	if b, ok := block.child(URLBufferAfter); ok && b.ValueDuration != nil {
		cfg.BufferAfterMin = b.ValueDuration.Minutes()
	}
	if a, ok := block.child(URLAlignmentInterval); ok && a.ValueDuration != nil {
		cfg.AlignmentIntervalMin = a.ValueDuration.Minutes()
	}
	if a, ok := block.child(URLAlignmentOffset); ok && a.ValueDuration != nil {
		cfg.AlignmentOffsetMin = a.ValueDuration.Minutes()
	}

	for _, le := range block.children(URLBookingLimit) {
		cfg.AddBookingLimit(decodeBookingLimit(le))
	}

	if tz, ok := block.child(URLTimezone); ok && tz.ValueCode != nil {
		cfg.Timezone = *tz.ValueCode
	}

	return serviceType, cfg, nil
}

// decodeRecurring marks the entry's weekdays enabled and appends one window
// per start time at the entry's duration.
func decodeRecurring(entry Extension, week domain.WeekSchedule) error {
	var days []Extension = entry.children(URLDay)
	if len(days) == 0 {
		return nil
	}

	durMin := 0
	if d, ok := entry.child(URLDuration); ok && d.ValueDuration != nil {
		durMin = d.ValueDuration.Minutes()
	}

	var endMinute *domain.TimeOfDay
	if e, ok := entry.child(URLEnd); ok && e.ValueTime != nil {
		end, err := domain.ParseTimeOfDay(*e.ValueTime)
		if err != nil {
			return fmt.Errorf("recurring entry end time: %w", err)
		}
		endMinute = &end
	}

	for _, dayExt := range days {
		if dayExt.ValueCode == nil {
			continue
		}
		day, ok := dayFromCode(*dayExt.ValueCode)
		if !ok {
			return fmt.Errorf("unknown weekday code %q", *dayExt.ValueCode)
		}

		starts := entry.children(URLStart)
		if len(starts) == 0 {
			// Day referenced without windows: mark enabled, the default
			// window is substituted after all entries are applied.
			week.EnableDay(day)
			continue
		}

		for _, startExt := range starts {
			if startExt.ValueTime == nil {
				continue
			}
			start, err := domain.ParseTimeOfDay(*startExt.ValueTime)
			if err != nil {
				return fmt.Errorf("recurring entry start time: %w", err)
			}

			dur := durMin
			if dur == 0 && endMinute != nil {
				// End-of-day values at or before the start wrap past
				// midnight: add a day.
				dur = int(*endMinute) - int(start)
				if dur <= 0 {
					dur += domain.MinutesPerDay
				}
			}
			if dur <= 0 {
				continue
			}

			week.AddWindow(day, domain.TimeWindow{StartMinute: start, DurationMin: dur})
		}
	}
	return nil
}

func decodeBookingLimit(entry Extension) domain.BookingLimit {
	limit := domain.BookingLimit{PeriodLength: 1}
	if c, ok := entry.child(URLLimitCount); ok && c.ValueInteger != nil {
		limit.MaxCount = *c.ValueInteger
	}
	if p, ok := entry.child(URLLimitPeriod); ok && p.ValueInteger != nil {
		limit.PeriodLength = *p.ValueInteger
	}
	if u, ok := entry.child(URLLimitPeriodUnit); ok && u.ValueCode != nil {
		limit.PeriodUnit = domain.PeriodUnit(*u.ValueCode)
	}
	return limit
}

// DecodeAll splits a schedule's availability blocks into the default
// configuration and its service overrides. At most one default block is
// allowed; each service type keeps the first block seen for it.
func DecodeAll(blocks []Extension) (*domain.AvailabilityConfig, []domain.ServiceOverride, error) {
	var def *domain.AvailabilityConfig
	var overrides []domain.ServiceOverride
	seen := make(map[string]bool)

	for _, block := range blocks {
		serviceType, cfg, err := Decode(block)
		if err != nil {
			return nil, nil, err
		}
		if serviceType == "" {
			if def != nil {
				return nil, nil, ErrDuplicateDefault
			}
			def = cfg
			continue
		}
		if seen[serviceType] {
			continue
		}
		seen[serviceType] = true
		overrides = append(overrides, domain.ServiceOverride{ServiceType: serviceType, Config: cfg})
	}
	return def, overrides, nil
}
