package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	sharedDomain "github.com/praxisdesk/availability/internal/shared/domain"
	"github.com/praxisdesk/availability/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

var (
	ErrBadDate        = errors.New("date must be YYYY-MM-DD")
	ErrEndBeforeStart = errors.New("end date must not be before start date")
)

const dateLayout = "2006-01-02"

// BlockTimeCommand carves out a busy-unavailable slot on a schedule, either
// covering whole days or a timed range.
type BlockTimeCommand struct {
	ScheduleID uuid.UUID
	AllDay     bool
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD, empty means StartDate
	StartTime  string // HH:MM, required unless AllDay
	EndTime    string // HH:MM, required unless AllDay
	Comment    string

	// Location resolves the dates' wall clock; nil means time.Local.
	Location *time.Location
}

// BlockTimeResult reports the created slot.
type BlockTimeResult struct {
	SlotID   uuid.UUID
	Interval domain.Interval
}

// BlockTimeHandler handles the BlockTimeCommand.
type BlockTimeHandler struct {
	slotRepo  domain.SlotRepository
	apptRepo  domain.AppointmentRepository
	publisher eventbus.Publisher
	cache     CalendarInvalidator
	logger    *slog.Logger
}

// NewBlockTimeHandler creates a new BlockTimeHandler.
func NewBlockTimeHandler(
	slotRepo domain.SlotRepository,
	apptRepo domain.AppointmentRepository,
	publisher eventbus.Publisher,
	cache CalendarInvalidator,
	logger *slog.Logger,
) *BlockTimeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlockTimeHandler{
		slotRepo:  slotRepo,
		apptRepo:  apptRepo,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// Handle validates the request locally, rejects it if it would cover a live
// appointment, and writes one busy-unavailable slot.
func (h *BlockTimeHandler) Handle(ctx context.Context, cmd BlockTimeCommand) (*BlockTimeResult, error) {
	interval, err := buildBlockInterval(cmd)
	if err != nil {
		return nil, err
	}

	// A block must not be created over a live appointment.
	existing, err := h.apptRepo.FindByScheduleAndRange(ctx, cmd.ScheduleID, interval.Start, interval.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	if err := domain.CheckAgainstAppointments(interval, existing); err != nil {
		return nil, err
	}

	slot := domain.Slot{
		ScheduleID: cmd.ScheduleID,
		Status:     domain.SlotBusyUnavailable,
		Interval:   interval,
		Comment:    cmd.Comment,
	}
	created, err := h.slotRepo.Create(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to create blocked slot: %w", err)
	}

	h.invalidate(ctx, cmd.ScheduleID)
	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, []sharedDomain.DomainEvent{
		domain.NewTimeBlocked(cmd.ScheduleID, created),
	})

	return &BlockTimeResult{SlotID: created.ID, Interval: created.Interval}, nil
}

func (h *BlockTimeHandler) invalidate(ctx context.Context, scheduleID uuid.UUID) {
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

// buildBlockInterval turns the ephemeral request into one concrete interval.
// All validation is local; nothing reaches the store on failure.
func buildBlockInterval(cmd BlockTimeCommand) (domain.Interval, error) {
	loc := cmd.Location
	if loc == nil {
		loc = time.Local
	}

	startDay, err := time.ParseInLocation(dateLayout, cmd.StartDate, loc)
	if err != nil {
		return domain.Interval{}, ErrBadDate
	}
	endDay := startDay
	if cmd.EndDate != "" {
		endDay, err = time.ParseInLocation(dateLayout, cmd.EndDate, loc)
		if err != nil {
			return domain.Interval{}, ErrBadDate
		}
	}
	if endDay.Before(startDay) {
		return domain.Interval{}, ErrEndBeforeStart
	}

	if cmd.AllDay {
		// Whole days: midnight of the first day through midnight after the last.
		return domain.NewInterval(startDay, endDay.AddDate(0, 0, 1))
	}

	startTod, err := domain.ParseTimeOfDay(cmd.StartTime)
	if err != nil {
		return domain.Interval{}, err
	}
	endTod, err := domain.ParseTimeOfDay(cmd.EndTime)
	if err != nil {
		return domain.Interval{}, err
	}

	return domain.NewInterval(startTod.At(startDay), endTod.At(endDay))
}
