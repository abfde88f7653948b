package persistence

import (
	"context"
	"log/slog"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// newStoreBreaker builds the circuit breaker shared by the guarded repository
// wrappers. Five consecutive store failures trip it open for the timeout.
func newStoreBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker[any] {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("store circuit breaker state changed",
				"repository", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return gobreaker.NewCircuitBreaker[any](settings)
}

// GuardedScheduleRepository wraps a schedule repository with a circuit breaker.
type GuardedScheduleRepository struct {
	inner   domain.ScheduleRepository
	breaker *gobreaker.CircuitBreaker[any]
}

// NewGuardedScheduleRepository wraps inner with a circuit breaker.
func NewGuardedScheduleRepository(inner domain.ScheduleRepository, logger *slog.Logger) *GuardedScheduleRepository {
	return &GuardedScheduleRepository{
		inner:   inner,
		breaker: newStoreBreaker("schedules", logger),
	}
}

func (r *GuardedScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.inner.Save(ctx, schedule)
	})
	return err
}

func (r *GuardedScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Schedule), nil
}

func (r *GuardedScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.inner.Delete(ctx, id)
	})
	return err
}

// GuardedSlotRepository wraps a slot repository with a circuit breaker.
type GuardedSlotRepository struct {
	inner   domain.SlotRepository
	breaker *gobreaker.CircuitBreaker[any]
}

// NewGuardedSlotRepository wraps inner with a circuit breaker.
func NewGuardedSlotRepository(inner domain.SlotRepository, logger *slog.Logger) *GuardedSlotRepository {
	return &GuardedSlotRepository{
		inner:   inner,
		breaker: newStoreBreaker("slots", logger),
	}
}

func (r *GuardedSlotRepository) Create(ctx context.Context, slot domain.Slot) (domain.Slot, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.Create(ctx, slot)
	})
	if err != nil {
		return domain.Slot{}, err
	}
	return result.(domain.Slot), nil
}

func (r *GuardedSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Slot, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.FindByID(ctx, id)
	})
	if err != nil {
		return domain.Slot{}, err
	}
	return result.(domain.Slot), nil
}

func (r *GuardedSlotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SlotStatus) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.inner.UpdateStatus(ctx, id, status)
	})
	return err
}

func (r *GuardedSlotRepository) FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]domain.Slot, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.FindByScheduleAndRange(ctx, scheduleID, from, to)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Slot), nil
}

func (r *GuardedSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.inner.Delete(ctx, id)
	})
	return err
}

// GuardedAppointmentRepository wraps an appointment repository with a circuit breaker.
type GuardedAppointmentRepository struct {
	inner   domain.AppointmentRepository
	breaker *gobreaker.CircuitBreaker[any]
}

// NewGuardedAppointmentRepository wraps inner with a circuit breaker.
func NewGuardedAppointmentRepository(inner domain.AppointmentRepository, logger *slog.Logger) *GuardedAppointmentRepository {
	return &GuardedAppointmentRepository{
		inner:   inner,
		breaker: newStoreBreaker("appointments", logger),
	}
}

func (r *GuardedAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.inner.Create(ctx, appt)
	})
	return err
}

func (r *GuardedAppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.inner.Update(ctx, appt)
	})
	return err
}

func (r *GuardedAppointmentRepository) FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.FindByScheduleAndRange(ctx, scheduleID, from, to)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*domain.Appointment), nil
}

func (r *GuardedAppointmentRepository) FindBySeries(ctx context.Context, seriesID uuid.UUID) ([]*domain.Appointment, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.inner.FindBySeries(ctx, seriesID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*domain.Appointment), nil
}
