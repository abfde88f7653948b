package domain

// PeriodUnit is the repeating period a booking limit is counted over.
type PeriodUnit string

const (
	PeriodDay   PeriodUnit = "day"
	PeriodWeek  PeriodUnit = "week"
	PeriodMonth PeriodUnit = "month"
)

// IsValid reports whether the unit is one of day, week, or month.
func (u PeriodUnit) IsValid() bool {
	switch u {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

// BookingLimit caps the number of appointments within a repeating period.
type BookingLimit struct {
	MaxCount     int
	PeriodLength int
	PeriodUnit   PeriodUnit
}

// IsMeaningful reports whether the limit constrains anything. Non-positive
// counts mean "no limit" and are dropped, never stored.
func (l BookingLimit) IsMeaningful() bool {
	return l.MaxCount > 0 && l.PeriodLength > 0 && l.PeriodUnit.IsValid()
}

// AvailabilityConfig is the declarative weekly-hours-plus-constraints model
// a provider sets for one configuration scope.
//
// Buffers, alignment, and booking limits are stored and handed to the
// backing store's availability search; the local slot generator never
// enforces them.
type AvailabilityConfig struct {
	DurationValue float64
	DurationUnit  DurationUnit
	Week          WeekSchedule

	BufferBeforeMin      int
	BufferAfterMin       int
	AlignmentIntervalMin int
	AlignmentOffsetMin   int

	BookingLimits []BookingLimit

	// Timezone is an optional IANA identifier; empty means the schedule's
	// local timezone.
	Timezone string
}

// NewAvailabilityConfig returns a config with an empty week and no constraints.
func NewAvailabilityConfig() *AvailabilityConfig {
	return &AvailabilityConfig{
		DurationUnit: UnitMinutes,
		Week:         NewWeekSchedule(),
	}
}

// SlotDurationMin returns the configured appointment duration in minutes.
func (c *AvailabilityConfig) SlotDurationMin() int {
	return c.DurationUnit.ToMinutes(c.DurationValue)
}

// AddBookingLimit appends a limit, silently dropping meaningless ones.
func (c *AvailabilityConfig) AddBookingLimit(l BookingLimit) {
	if !l.IsMeaningful() {
		return
	}
	c.BookingLimits = append(c.BookingLimits, l)
}

// ServiceOverride is an AvailabilityConfig keyed by a service-type code.
// An override replaces the default configuration for that service type
// entirely; there is no field-level merge.
type ServiceOverride struct {
	ServiceType string
	Config      *AvailabilityConfig
}
