package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	sharedDomain "github.com/praxisdesk/availability/internal/shared/domain"
	"github.com/praxisdesk/availability/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// CalendarInvalidator drops cached calendar views for a schedule after a
// mutation. A nil invalidator is a no-op.
type CalendarInvalidator interface {
	Invalidate(ctx context.Context, scheduleID uuid.UUID) error
}

// BookAppointmentCommand books one appointment, or a weekly-interval series
// when RecurCount is two or more.
type BookAppointmentCommand struct {
	ScheduleID  uuid.UUID
	Start       time.Time
	End         time.Time
	Description string

	// SlotID optionally names the free persisted slot being consumed; it is
	// marked busy once the booking is written.
	SlotID uuid.UUID

	RecurCount         int
	RecurIntervalWeeks int
}

// BookAppointmentResult reports the created appointments.
type BookAppointmentResult struct {
	AppointmentIDs []uuid.UUID
	SeriesID       uuid.UUID
}

// BookAppointmentHandler handles the BookAppointmentCommand.
type BookAppointmentHandler struct {
	slotRepo  domain.SlotRepository
	apptRepo  domain.AppointmentRepository
	publisher eventbus.Publisher
	cache     CalendarInvalidator
	logger    *slog.Logger
}

// NewBookAppointmentHandler creates a new BookAppointmentHandler.
func NewBookAppointmentHandler(
	slotRepo domain.SlotRepository,
	apptRepo domain.AppointmentRepository,
	publisher eventbus.Publisher,
	cache CalendarInvalidator,
	logger *slog.Logger,
) *BookAppointmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookAppointmentHandler{
		slotRepo:  slotRepo,
		apptRepo:  apptRepo,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// Handle validates the request, runs the advisory conflict checks against
// the current snapshot, and writes the appointment(s). The store remains the
// authority: a write-time rejection under concurrent mutation is surfaced to
// the caller, who must re-fetch rather than retry blindly.
func (h *BookAppointmentHandler) Handle(ctx context.Context, cmd BookAppointmentCommand) (*BookAppointmentResult, error) {
	first, err := domain.NewInterval(cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}

	count := cmd.RecurCount
	if count < 1 {
		count = 1
	}
	occurrences, err := domain.ExpandSeries(first, count, cmd.RecurIntervalWeeks)
	if err != nil {
		return nil, err
	}

	// One snapshot covering every occurrence serves all conflict checks.
	windowStart := occurrences[0].Interval.Start
	windowEnd := occurrences[len(occurrences)-1].Interval.End

	blocked, err := h.slotRepo.FindByScheduleAndRange(ctx, cmd.ScheduleID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	existing, err := h.apptRepo.FindByScheduleAndRange(ctx, cmd.ScheduleID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	for _, occ := range occurrences {
		if err := domain.CheckAgainstBlocked(occ.Interval, blocked); err != nil {
			return nil, err
		}
		if err := domain.CheckAgainstAppointments(occ.Interval, existing); err != nil {
			return nil, err
		}
	}

	result := &BookAppointmentResult{}
	var events []sharedDomain.DomainEvent
	for _, occ := range occurrences {
		appt, err := domain.NewAppointment(cmd.ScheduleID, occ.Interval, cmd.Description)
		if err != nil {
			return nil, err
		}
		if occ.SeriesID != uuid.Nil {
			appt.AssignSeries(occ.SeriesID)
			result.SeriesID = occ.SeriesID
		}
		if err := h.apptRepo.Create(ctx, appt); err != nil {
			return nil, fmt.Errorf("failed to create appointment: %w", err)
		}
		result.AppointmentIDs = append(result.AppointmentIDs, appt.ID())
		events = append(events, domain.NewAppointmentBooked(cmd.ScheduleID, appt))
	}

	if cmd.SlotID != uuid.Nil {
		if err := h.slotRepo.UpdateStatus(ctx, cmd.SlotID, domain.SlotBusy); err != nil {
			return nil, fmt.Errorf("failed to mark slot busy: %w", err)
		}
	}

	h.invalidate(ctx, cmd.ScheduleID)
	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, events)

	return result, nil
}

func (h *BookAppointmentHandler) invalidate(ctx context.Context, scheduleID uuid.UUID) {
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
