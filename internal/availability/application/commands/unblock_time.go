package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/praxisdesk/availability/internal/availability/domain"
	sharedDomain "github.com/praxisdesk/availability/internal/shared/domain"
	"github.com/praxisdesk/availability/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// ErrSlotNotBlocked reports an unblock attempt on a slot that is not a
// busy-unavailable block. Booked slots are released by cancelling their
// appointment, never by deleting the slot.
var ErrSlotNotBlocked = errors.New("slot is not a blocked-time slot")

// UnblockTimeCommand deletes a previously created busy-unavailable slot.
type UnblockTimeCommand struct {
	SlotID uuid.UUID
}

// UnblockTimeResult reports the removed slot.
type UnblockTimeResult struct {
	ScheduleID uuid.UUID
	Interval   domain.Interval
}

// UnblockTimeHandler handles the UnblockTimeCommand.
type UnblockTimeHandler struct {
	slotRepo  domain.SlotRepository
	publisher eventbus.Publisher
	cache     CalendarInvalidator
	logger    *slog.Logger
}

// NewUnblockTimeHandler creates a new UnblockTimeHandler.
func NewUnblockTimeHandler(
	slotRepo domain.SlotRepository,
	publisher eventbus.Publisher,
	cache CalendarInvalidator,
	logger *slog.Logger,
) *UnblockTimeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnblockTimeHandler{
		slotRepo:  slotRepo,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// Handle loads the slot, refuses anything that is not a block, and deletes it.
func (h *UnblockTimeHandler) Handle(ctx context.Context, cmd UnblockTimeCommand) (*UnblockTimeResult, error) {
	slot, err := h.slotRepo.FindByID(ctx, cmd.SlotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if slot.Status != domain.SlotBusyUnavailable {
		return nil, ErrSlotNotBlocked
	}

	if err := h.slotRepo.Delete(ctx, cmd.SlotID); err != nil {
		return nil, fmt.Errorf("failed to delete blocked slot: %w", err)
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, slot.ScheduleID); err != nil {
			h.logger.Warn("failed to invalidate calendar cache",
				"schedule_id", slot.ScheduleID,
				"error", err,
			)
		}
	}
	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, []sharedDomain.DomainEvent{
		domain.NewTimeUnblocked(slot.ScheduleID, slot),
	})

	return &UnblockTimeResult{ScheduleID: slot.ScheduleID, Interval: slot.Interval}, nil
}
