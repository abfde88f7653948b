package commands

import (
	"context"
	"testing"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnblockTimeHandler_DeletesBlockedSlot(t *testing.T) {
	slots := new(mockSlotRepo)
	inval := new(mockInvalidator)
	pub := &capturingPublisher{}
	handler := NewUnblockTimeHandler(slots, pub, inval, nil)

	scheduleID := uuid.New()
	slot := domain.Slot{
		ID:         uuid.New(),
		ScheduleID: scheduleID,
		Status:     domain.SlotBusyUnavailable,
		Interval:   domain.Interval{Start: day(14, 12, 0), End: day(14, 13, 0)},
		Comment:    "lunch",
	}
	slots.On("FindByID", mock.Anything, slot.ID).Return(slot, nil)
	slots.On("Delete", mock.Anything, slot.ID).Return(nil)
	inval.On("Invalidate", mock.Anything, scheduleID).Return(nil)

	result, err := handler.Handle(context.Background(), UnblockTimeCommand{SlotID: slot.ID})

	require.NoError(t, err)
	assert.Equal(t, scheduleID, result.ScheduleID)
	assert.True(t, result.Interval.Start.Equal(day(14, 12, 0)))
	assert.Equal(t, []string{"availability.slot.unblocked"}, pub.routingKeys)
	slots.AssertExpectations(t)
	inval.AssertExpectations(t)
}

func TestUnblockTimeHandler_RejectsNonBlockedSlot(t *testing.T) {
	slots := new(mockSlotRepo)
	handler := NewUnblockTimeHandler(slots, nil, nil, nil)

	slot := domain.Slot{
		ID:         uuid.New(),
		ScheduleID: uuid.New(),
		Status:     domain.SlotBusy,
		Interval:   domain.Interval{Start: day(14, 9, 0), End: day(14, 10, 0)},
	}
	slots.On("FindByID", mock.Anything, slot.ID).Return(slot, nil)

	result, err := handler.Handle(context.Background(), UnblockTimeCommand{SlotID: slot.ID})

	assert.ErrorIs(t, err, ErrSlotNotBlocked)
	assert.Nil(t, result)
	slots.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUnblockTimeHandler_MissingSlot(t *testing.T) {
	slots := new(mockSlotRepo)
	handler := NewUnblockTimeHandler(slots, nil, nil, nil)

	id := uuid.New()
	slots.On("FindByID", mock.Anything, id).Return(domain.Slot{}, assert.AnError)

	result, err := handler.Handle(context.Background(), UnblockTimeCommand{SlotID: id})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, result)
	slots.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
