package queries

import (
	"context"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
)

// ExpandSlotsQuery materializes a schedule's default weekly availability
// over a date range as virtual free slots.
type ExpandSlotsQuery struct {
	ScheduleID uuid.UUID
	From       time.Time
	To         time.Time
}

// ExpandSlotsHandler handles the ExpandSlotsQuery.
type ExpandSlotsHandler struct {
	scheduleRepo domain.ScheduleRepository
}

// NewExpandSlotsHandler creates a new ExpandSlotsHandler.
func NewExpandSlotsHandler(scheduleRepo domain.ScheduleRepository) *ExpandSlotsHandler {
	return &ExpandSlotsHandler{scheduleRepo: scheduleRepo}
}

// Handle expands the default configuration. A schedule without a default
// scope yields an empty result: service overrides feed the store's
// availability search, not this display path.
func (h *ExpandSlotsHandler) Handle(ctx context.Context, query ExpandSlotsQuery) ([]SlotDTO, error) {
	schedule, err := h.scheduleRepo.FindByID(ctx, query.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil || schedule.DefaultConfig() == nil {
		return []SlotDTO{}, nil
	}

	slots := domain.ExpandSlots(schedule.DefaultConfig(), query.ScheduleID, query.From, query.To)
	return toSlotDTOs(slots), nil
}
