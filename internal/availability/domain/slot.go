package domain

import "github.com/google/uuid"

// SlotStatus describes the booking state of a slot.
type SlotStatus string

const (
	SlotFree            SlotStatus = "free"
	SlotBusy            SlotStatus = "busy"
	SlotBusyUnavailable SlotStatus = "busy-unavailable"
	SlotBusyTentative   SlotStatus = "busy-tentative"
	SlotEnteredInError  SlotStatus = "entered-in-error"
)

// Slot is a time interval on a schedule's calendar. Slots without an ID are
// virtual: generated for display from configuration, never persisted and
// never deletable. Slots with an ID are owned by the backing store and are
// created or deleted by booking and blocking operations.
type Slot struct {
	ID         uuid.UUID
	ScheduleID uuid.UUID
	Status     SlotStatus
	Interval   Interval
	Comment    string
}

// NewVirtualSlot creates a display-only free slot with no identity.
func NewVirtualSlot(scheduleID uuid.UUID, interval Interval) Slot {
	return Slot{
		ScheduleID: scheduleID,
		Status:     SlotFree,
		Interval:   interval,
	}
}

// Virtual reports whether the slot exists only for display.
func (s Slot) Virtual() bool {
	return s.ID == uuid.Nil
}
