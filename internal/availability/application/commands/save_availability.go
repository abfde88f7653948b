package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/praxisdesk/availability/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// ErrScheduleNotFound reports an explicit schedule ID that matches no stored
// schedule. New schedules are only created when no ID was supplied.
var ErrScheduleNotFound = errors.New("schedule not found")

// SaveAvailabilityCommand replaces one configuration scope on a schedule:
// the default scope when ServiceType is empty, the named override otherwise.
type SaveAvailabilityCommand struct {
	ScheduleID  uuid.UUID
	Name        string // used when the schedule does not exist yet
	ServiceType string
	Config      *domain.AvailabilityConfig
}

// SaveAvailabilityResult reports the schedule the configuration landed on.
type SaveAvailabilityResult struct {
	ScheduleID uuid.UUID
	Created    bool
}

// SaveAvailabilityHandler handles the SaveAvailabilityCommand.
type SaveAvailabilityHandler struct {
	scheduleRepo domain.ScheduleRepository
	publisher    eventbus.Publisher
	cache        CalendarInvalidator
	logger       *slog.Logger
}

// NewSaveAvailabilityHandler creates a new SaveAvailabilityHandler.
func NewSaveAvailabilityHandler(
	scheduleRepo domain.ScheduleRepository,
	publisher eventbus.Publisher,
	cache CalendarInvalidator,
	logger *slog.Logger,
) *SaveAvailabilityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveAvailabilityHandler{
		scheduleRepo: scheduleRepo,
		publisher:    publisher,
		cache:        cache,
		logger:       logger,
	}
}

// Handle loads or creates the schedule, swaps the configuration scope, and
// saves the aggregate. A zero ScheduleID creates a fresh schedule; a non-zero
// one must name an existing schedule.
func (h *SaveAvailabilityHandler) Handle(ctx context.Context, cmd SaveAvailabilityCommand) (*SaveAvailabilityResult, error) {
	var schedule *domain.Schedule
	created := false
	if cmd.ScheduleID == uuid.Nil {
		schedule = domain.NewSchedule(cmd.Name)
		created = true
	} else {
		var err error
		schedule, err = h.scheduleRepo.FindByID(ctx, cmd.ScheduleID)
		if err != nil {
			return nil, fmt.Errorf("failed to load schedule: %w", err)
		}
		if schedule == nil {
			return nil, ErrScheduleNotFound
		}
	}

	if cmd.ServiceType == "" {
		schedule.SetDefaultConfig(cmd.Config)
	} else {
		schedule.SetOverride(cmd.ServiceType, cmd.Config)
	}

	if err := h.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, schedule.ID()); err != nil {
			h.logger.Warn("failed to invalidate calendar cache",
				"schedule_id", schedule.ID(),
				"error", err,
			)
		}
	}
	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, schedule.DomainEvents())
	schedule.ClearDomainEvents()

	return &SaveAvailabilityResult{ScheduleID: schedule.ID(), Created: created}, nil
}
