package queries

import (
	"context"
	"errors"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// GetAvailabilityQuery fetches a schedule's typed availability configuration.
type GetAvailabilityQuery struct {
	ScheduleID uuid.UUID
}

// AvailabilityDTO is the decoded configuration for display and editing.
type AvailabilityDTO struct {
	ScheduleID uuid.UUID
	Name       string
	Default    *domain.AvailabilityConfig
	Overrides  []domain.ServiceOverride
}

// GetAvailabilityHandler handles the GetAvailabilityQuery.
type GetAvailabilityHandler struct {
	scheduleRepo domain.ScheduleRepository
}

// NewGetAvailabilityHandler creates a new GetAvailabilityHandler.
func NewGetAvailabilityHandler(scheduleRepo domain.ScheduleRepository) *GetAvailabilityHandler {
	return &GetAvailabilityHandler{scheduleRepo: scheduleRepo}
}

// Handle executes the GetAvailabilityQuery.
func (h *GetAvailabilityHandler) Handle(ctx context.Context, query GetAvailabilityQuery) (*AvailabilityDTO, error) {
	schedule, err := h.scheduleRepo.FindByID(ctx, query.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	return &AvailabilityDTO{
		ScheduleID: schedule.ID(),
		Name:       schedule.Name(),
		Default:    schedule.DefaultConfig(),
		Overrides:  schedule.Overrides(),
	}, nil
}
