package commands

import (
	"context"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockScheduleRepo is a mock implementation of domain.ScheduleRepository.
type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Save(ctx context.Context, schedule *domain.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockSlotRepo is a mock implementation of domain.SlotRepository.
type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) Create(ctx context.Context, slot domain.Slot) (domain.Slot, error) {
	args := m.Called(ctx, slot)
	return args.Get(0).(domain.Slot), args.Error(1)
}

func (m *mockSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Slot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Slot), args.Error(1)
}

func (m *mockSlotRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SlotStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockSlotRepo) FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]domain.Slot, error) {
	args := m.Called(ctx, scheduleID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Slot), args.Error(1)
}

func (m *mockSlotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockApptRepo is a mock implementation of domain.AppointmentRepository.
type mockApptRepo struct {
	mock.Mock
}

func (m *mockApptRepo) Create(ctx context.Context, appt *domain.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *mockApptRepo) Update(ctx context.Context, appt *domain.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *mockApptRepo) FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, scheduleID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockApptRepo) FindBySeries(ctx context.Context, seriesID uuid.UUID) ([]*domain.Appointment, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

// mockInvalidator records calendar cache invalidations.
type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(ctx context.Context, scheduleID uuid.UUID) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

// capturingPublisher collects published routing keys.
type capturingPublisher struct {
	routingKeys []string
}

func (p *capturingPublisher) Publish(_ context.Context, routingKey string, _ []byte) error {
	p.routingKeys = append(p.routingKeys, routingKey)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }
