package commands

import (
	"context"
	"log/slog"

	"github.com/praxisdesk/availability/internal/availability/domain"
	sharedDomain "github.com/praxisdesk/availability/internal/shared/domain"
	"github.com/praxisdesk/availability/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// CancelSeriesCommand cancels every appointment sharing a series identifier.
type CancelSeriesCommand struct {
	SeriesID uuid.UUID
}

// CancelSeriesResult reports how much of the series was actually cancelled.
// Cancellation is best-effort across the collection: a partial count is
// reported as such, never masked as full success.
type CancelSeriesResult struct {
	Requested int
	Cancelled int
}

// CancelSeriesHandler handles the CancelSeriesCommand.
type CancelSeriesHandler struct {
	apptRepo  domain.AppointmentRepository
	publisher eventbus.Publisher
	cache     CalendarInvalidator
	logger    *slog.Logger
}

// NewCancelSeriesHandler creates a new CancelSeriesHandler.
func NewCancelSeriesHandler(
	apptRepo domain.AppointmentRepository,
	publisher eventbus.Publisher,
	cache CalendarInvalidator,
	logger *slog.Logger,
) *CancelSeriesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CancelSeriesHandler{
		apptRepo:  apptRepo,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// Handle cancels the series members one by one, sequentially, continuing
// past individual store failures. The first failure is returned alongside
// the partial result.
func (h *CancelSeriesHandler) Handle(ctx context.Context, cmd CancelSeriesCommand) (*CancelSeriesResult, error) {
	members, err := h.apptRepo.FindBySeries(ctx, cmd.SeriesID)
	if err != nil {
		return nil, err
	}

	result := &CancelSeriesResult{Requested: len(members)}
	var firstErr error
	var scheduleID uuid.UUID

	for _, appt := range members {
		scheduleID = appt.ScheduleID()
		if appt.IsCancelled() {
			result.Cancelled++
			continue
		}
		appt.Cancel()
		if err := h.apptRepo.Update(ctx, appt); err != nil {
			h.logger.Warn("failed to cancel series member",
				"appointment_id", appt.ID(),
				"series_id", cmd.SeriesID,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.Cancelled++
	}

	if len(members) > 0 {
		h.invalidate(ctx, scheduleID)
		eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, []sharedDomain.DomainEvent{
			domain.NewSeriesCancelled(scheduleID, cmd.SeriesID, result.Requested, result.Cancelled),
		})
	}

	return result, firstErr
}

func (h *CancelSeriesHandler) invalidate(ctx context.Context, scheduleID uuid.UUID) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx, scheduleID); err != nil {
		h.logger.Warn("failed to invalidate calendar cache",
			"schedule_id", scheduleID,
			"error", err,
		)
	}
}
