package domain

import (
	"time"

	sharedDomain "github.com/praxisdesk/availability/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateTypeSchedule = "schedule"

	RoutingKeyAppointmentBooked   = "availability.appointment.booked"
	RoutingKeyTimeBlocked         = "availability.slot.blocked"
	RoutingKeyTimeUnblocked       = "availability.slot.unblocked"
	RoutingKeySeriesCancelled     = "availability.series.cancelled"
	RoutingKeyAvailabilityChanged = "availability.config.changed"
)

// AppointmentBookedEvent is raised when an appointment passes the conflict
// gate and is written to the store.
type AppointmentBookedEvent struct {
	sharedDomain.BaseEvent
	AppointmentID uuid.UUID `json:"appointment_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	SeriesID      uuid.UUID `json:"series_id,omitempty"`
}

// NewAppointmentBooked creates an AppointmentBookedEvent.
func NewAppointmentBooked(scheduleID uuid.UUID, appt *Appointment) AppointmentBookedEvent {
	return AppointmentBookedEvent{
		BaseEvent:     sharedDomain.NewBaseEvent(scheduleID, AggregateTypeSchedule, RoutingKeyAppointmentBooked),
		AppointmentID: appt.ID(),
		Start:         appt.Interval().Start,
		End:           appt.Interval().End,
		SeriesID:      appt.SeriesID(),
	}
}

// TimeBlockedEvent is raised when a busy-unavailable slot is created.
type TimeBlockedEvent struct {
	sharedDomain.BaseEvent
	SlotID  uuid.UUID `json:"slot_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Comment string    `json:"comment,omitempty"`
}

// NewTimeBlocked creates a TimeBlockedEvent.
func NewTimeBlocked(scheduleID uuid.UUID, slot Slot) TimeBlockedEvent {
	return TimeBlockedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateTypeSchedule, RoutingKeyTimeBlocked),
		SlotID:    slot.ID,
		Start:     slot.Interval.Start,
		End:       slot.Interval.End,
		Comment:   slot.Comment,
	}
}

// TimeUnblockedEvent is raised when a busy-unavailable slot is deleted.
type TimeUnblockedEvent struct {
	sharedDomain.BaseEvent
	SlotID uuid.UUID `json:"slot_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// NewTimeUnblocked creates a TimeUnblockedEvent.
func NewTimeUnblocked(scheduleID uuid.UUID, slot Slot) TimeUnblockedEvent {
	return TimeUnblockedEvent{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateTypeSchedule, RoutingKeyTimeUnblocked),
		SlotID:    slot.ID,
		Start:     slot.Interval.Start,
		End:       slot.Interval.End,
	}
}

// SeriesCancelledEvent is raised after a series cancellation pass, including
// partial ones.
type SeriesCancelledEvent struct {
	sharedDomain.BaseEvent
	SeriesID  uuid.UUID `json:"series_id"`
	Requested int       `json:"requested"`
	Cancelled int       `json:"cancelled"`
}

// NewSeriesCancelled creates a SeriesCancelledEvent.
func NewSeriesCancelled(scheduleID, seriesID uuid.UUID, requested, cancelled int) SeriesCancelledEvent {
	return SeriesCancelledEvent{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateTypeSchedule, RoutingKeySeriesCancelled),
		SeriesID:  seriesID,
		Requested: requested,
		Cancelled: cancelled,
	}
}

// AvailabilityChangedEvent is raised when a configuration scope is replaced
// or removed. ServiceType is empty for the default scope.
type AvailabilityChangedEvent struct {
	sharedDomain.BaseEvent
	ServiceType string `json:"service_type,omitempty"`
}

// NewAvailabilityChanged creates an AvailabilityChangedEvent.
func NewAvailabilityChanged(scheduleID uuid.UUID, serviceType string) AvailabilityChangedEvent {
	return AvailabilityChangedEvent{
		BaseEvent:   sharedDomain.NewBaseEvent(scheduleID, AggregateTypeSchedule, RoutingKeyAvailabilityChanged),
		ServiceType: serviceType,
	}
}
