package commands

import (
	"context"
	"testing"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func weekdayConfig() *domain.AvailabilityConfig {
	cfg := domain.NewAvailabilityConfig()
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday} {
		cfg.Week.EnableDay(d)
	}
	return cfg
}

func TestSaveAvailabilityHandler_CreatesSchedule(t *testing.T) {
	schedules := new(mockScheduleRepo)
	inval := new(mockInvalidator)
	pub := &capturingPublisher{}
	handler := NewSaveAvailabilityHandler(schedules, pub, inval, nil)

	schedules.On("Save", mock.Anything, mock.AnythingOfType("*domain.Schedule")).Return(nil)
	inval.On("Invalidate", mock.Anything, mock.Anything).Return(nil)

	result, err := handler.Handle(context.Background(), SaveAvailabilityCommand{
		Name:   "Dr. Vega",
		Config: weekdayConfig(),
	})

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotEqual(t, uuid.Nil, result.ScheduleID)
	assert.Equal(t, []string{"availability.config.changed"}, pub.routingKeys)
	schedules.AssertExpectations(t)
	schedules.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSaveAvailabilityHandler_UnknownScheduleID(t *testing.T) {
	schedules := new(mockScheduleRepo)
	handler := NewSaveAvailabilityHandler(schedules, nil, nil, nil)

	id := uuid.New()
	schedules.On("FindByID", mock.Anything, id).Return(nil, nil)

	result, err := handler.Handle(context.Background(), SaveAvailabilityCommand{
		ScheduleID: id,
		Name:       "Dr. Vega",
		Config:     weekdayConfig(),
	})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
	assert.Nil(t, result)
	schedules.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSaveAvailabilityHandler_SetsOverrideOnExisting(t *testing.T) {
	schedules := new(mockScheduleRepo)
	handler := NewSaveAvailabilityHandler(schedules, nil, nil, nil)

	schedule := domain.NewSchedule("Dr. Vega")
	schedule.SetDefaultConfig(weekdayConfig())
	schedule.ClearDomainEvents()

	schedules.On("FindByID", mock.Anything, schedule.ID()).Return(schedule, nil)
	schedules.On("Save", mock.Anything, schedule).Return(nil)

	override := weekdayConfig()
	override.DurationValue = 1.5
	override.DurationUnit = domain.UnitHours

	result, err := handler.Handle(context.Background(), SaveAvailabilityCommand{
		ScheduleID:  schedule.ID(),
		ServiceType: "surgery",
		Config:      override,
	})

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, schedule.ID(), result.ScheduleID)
	assert.Same(t, override, schedule.ConfigFor("surgery"))
	// Events are drained after publishing.
	assert.Empty(t, schedule.DomainEvents())
}
