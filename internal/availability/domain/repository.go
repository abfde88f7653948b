package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleRepository persists schedule aggregates, including their encoded
// availability configurations.
type ScheduleRepository interface {
	Save(ctx context.Context, schedule *Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SlotRepository persists slots. Virtual slots never pass through here.
type SlotRepository interface {
	Create(ctx context.Context, slot Slot) (Slot, error)
	FindByID(ctx context.Context, id uuid.UUID) (Slot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status SlotStatus) error
	FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]Slot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AppointmentRepository persists appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *Appointment) error
	Update(ctx context.Context, appt *Appointment) error
	FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]*Appointment, error)
	FindBySeries(ctx context.Context, seriesID uuid.UUID) ([]*Appointment, error)
}
