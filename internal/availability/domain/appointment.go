package domain

import (
	"time"

	sharedDomain "github.com/praxisdesk/availability/internal/shared/domain"
	"github.com/google/uuid"
)

// AppointmentStatus describes the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentBooked    AppointmentStatus = "booked"
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentFulfilled AppointmentStatus = "fulfilled"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "noshow"
)

// Appointment is a booked interval on a schedule. Recurring appointments
// generated as one series share a series ID for bulk cancellation.
type Appointment struct {
	sharedDomain.BaseEntity
	scheduleID  uuid.UUID
	interval    Interval
	status      AppointmentStatus
	seriesID    uuid.UUID // uuid.Nil when not part of a series
	description string
}

// NewAppointment creates a booked appointment for the given interval.
func NewAppointment(scheduleID uuid.UUID, interval Interval, description string) (*Appointment, error) {
	if !interval.End.After(interval.Start) {
		return nil, ErrInvalidTimeRange
	}
	return &Appointment{
		BaseEntity:  sharedDomain.NewBaseEntity(),
		scheduleID:  scheduleID,
		interval:    interval,
		status:      AppointmentBooked,
		description: description,
	}, nil
}

func (a *Appointment) ScheduleID() uuid.UUID     { return a.scheduleID }
func (a *Appointment) Interval() Interval        { return a.interval }
func (a *Appointment) Status() AppointmentStatus { return a.status }
func (a *Appointment) SeriesID() uuid.UUID       { return a.seriesID }
func (a *Appointment) Description() string       { return a.description }

// InSeries reports whether the appointment belongs to a recurring series.
func (a *Appointment) InSeries() bool {
	return a.seriesID != uuid.Nil
}

// AssignSeries tags the appointment with a shared series identifier.
func (a *Appointment) AssignSeries(seriesID uuid.UUID) {
	a.seriesID = seriesID
	a.Touch()
}

// IsCancelled reports whether the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.status == AppointmentCancelled
}

// Cancel marks the appointment cancelled.
func (a *Appointment) Cancel() {
	a.status = AppointmentCancelled
	a.Touch()
}

// RehydrateAppointment recreates an appointment from persisted state.
func RehydrateAppointment(
	id uuid.UUID,
	scheduleID uuid.UUID,
	interval Interval,
	status AppointmentStatus,
	seriesID uuid.UUID,
	description string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		BaseEntity:  sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		scheduleID:  scheduleID,
		interval:    interval,
		status:      status,
		seriesID:    seriesID,
		description: description,
	}
}
