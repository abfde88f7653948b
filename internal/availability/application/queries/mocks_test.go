package queries

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

// memoryCache is an in-process CalendarCache for handler tests.
type memoryCache struct {
	entries map[string][]SlotDTO
	getErr  error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]SlotDTO{}}
}

func cacheKey(scheduleID uuid.UUID, from, to time.Time) string {
	return scheduleID.String() + "|" + from.Format(time.RFC3339) + "|" + to.Format(time.RFC3339)
}

func (c *memoryCache) Get(_ context.Context, scheduleID uuid.UUID, from, to time.Time) ([]SlotDTO, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	slots, ok := c.entries[cacheKey(scheduleID, from, to)]
	return slots, ok, nil
}

func (c *memoryCache) Set(_ context.Context, scheduleID uuid.UUID, from, to time.Time, slots []SlotDTO) error {
	c.entries[cacheKey(scheduleID, from, to)] = slots
	c.sets++
	return nil
}
