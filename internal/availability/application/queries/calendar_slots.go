package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
)

// CalendarCache caches computed calendar views per schedule and range.
// A nil cache disables caching.
type CalendarCache interface {
	Get(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]SlotDTO, bool, error)
	Set(ctx context.Context, scheduleID uuid.UUID, from, to time.Time, slots []SlotDTO) error
}

// CalendarSlotsQuery builds the canonical calendar view for a schedule:
// persisted slots fetched from the store and merged, overlaid with the
// virtual expansion of the default availability.
type CalendarSlotsQuery struct {
	ScheduleID uuid.UUID
	From       time.Time
	To         time.Time
}

// CalendarSlotsHandler handles the CalendarSlotsQuery.
type CalendarSlotsHandler struct {
	scheduleRepo domain.ScheduleRepository
	slotRepo     domain.SlotRepository
	cache        CalendarCache
	guard        FetchGuard
	logger       *slog.Logger
}

// NewCalendarSlotsHandler creates a new CalendarSlotsHandler.
func NewCalendarSlotsHandler(
	scheduleRepo domain.ScheduleRepository,
	slotRepo domain.SlotRepository,
	cache CalendarCache,
	logger *slog.Logger,
) *CalendarSlotsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarSlotsHandler{
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Handle fetches and merges the persisted slots, then appends the virtual
// expansion. Each call supersedes earlier in-flight calls: a result arriving
// after a newer fetch began is discarded and reported as ErrFetchSuperseded,
// which callers suppress rather than surface. A context cancelled mid-fetch
// is folded into the same suppressed error.
func (h *CalendarSlotsHandler) Handle(ctx context.Context, query CalendarSlotsQuery) ([]SlotDTO, error) {
	token := h.guard.Begin()

	if h.cache != nil {
		cached, ok, err := h.cache.Get(ctx, query.ScheduleID, query.From, query.To)
		if err != nil {
			h.logger.Warn("calendar cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	persisted, err := h.slotRepo.FindByScheduleAndRange(ctx, query.ScheduleID, query.From, query.To)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrFetchSuperseded
		}
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	if token.Superseded() {
		return nil, ErrFetchSuperseded
	}

	view := toSlotDTOs(domain.MergeSlots(persisted))

	schedule, err := h.scheduleRepo.FindByID(ctx, query.ScheduleID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrFetchSuperseded
		}
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if token.Superseded() {
		return nil, ErrFetchSuperseded
	}
	if schedule != nil && schedule.DefaultConfig() != nil {
		virtual := domain.ExpandSlots(schedule.DefaultConfig(), query.ScheduleID, query.From, query.To)
		view = append(view, toSlotDTOs(virtual)...)
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, query.ScheduleID, query.From, query.To, view); err != nil {
			h.logger.Warn("calendar cache write failed", "error", err)
		}
	}
	return view, nil
}
