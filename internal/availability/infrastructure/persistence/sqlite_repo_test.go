package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/praxisdesk/availability/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), sqlDB))
	return sqlDB
}

func ts(d, h, m int) time.Time {
	return time.Date(2026, time.March, d, h, m, 0, 0, time.UTC)
}

func TestSQLiteScheduleRepository_RoundTrip(t *testing.T) {
	repo := NewSQLiteScheduleRepository(setupTestDB(t))
	ctx := context.Background()

	cfg := domain.NewAvailabilityConfig()
	cfg.Week.EnableDay(time.Monday)
	cfg.Week.AddWindow(time.Monday, domain.TimeWindow{StartMinute: 9 * 60, DurationMin: 180})
	cfg.BufferBeforeMin = 10

	override := domain.NewAvailabilityConfig()
	override.DurationValue = 1.5
	override.DurationUnit = domain.UnitHours
	override.Week.EnableDay(time.Friday)

	schedule := domain.NewSchedule("Dr. Vega")
	schedule.SetDefaultConfig(cfg)
	schedule.SetOverride("surgery", override)

	require.NoError(t, repo.Save(ctx, schedule))

	loaded, err := repo.FindByID(ctx, schedule.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, schedule.ID(), loaded.ID())
	assert.Equal(t, "Dr. Vega", loaded.Name())

	def := loaded.DefaultConfig()
	require.NotNil(t, def)
	assert.Equal(t, 10, def.BufferBeforeMin)
	assert.Equal(t, []domain.TimeWindow{{StartMinute: 9 * 60, DurationMin: 180}},
		def.Week[time.Monday].Windows)

	overrides := loaded.Overrides()
	require.Len(t, overrides, 1)
	assert.Equal(t, "surgery", overrides[0].ServiceType)
	assert.Equal(t, 90, overrides[0].Config.SlotDurationMin())
}

func TestSQLiteScheduleRepository_SaveIsUpsert(t *testing.T) {
	repo := NewSQLiteScheduleRepository(setupTestDB(t))
	ctx := context.Background()

	schedule := domain.NewSchedule("Dr. Vega")
	require.NoError(t, repo.Save(ctx, schedule))

	cfg := domain.NewAvailabilityConfig()
	cfg.Week.EnableDay(time.Tuesday)
	schedule.SetDefaultConfig(cfg)
	require.NoError(t, repo.Save(ctx, schedule))

	loaded, err := repo.FindByID(ctx, schedule.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded.DefaultConfig())
	assert.True(t, loaded.DefaultConfig().Week[time.Tuesday].Enabled)
}

func TestSQLiteScheduleRepository_FindMissing(t *testing.T) {
	repo := NewSQLiteScheduleRepository(setupTestDB(t))

	loaded, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSQLiteScheduleRepository_Delete(t *testing.T) {
	repo := NewSQLiteScheduleRepository(setupTestDB(t))
	ctx := context.Background()

	schedule := domain.NewSchedule("Dr. Vega")
	require.NoError(t, repo.Save(ctx, schedule))
	require.NoError(t, repo.Delete(ctx, schedule.ID()))

	assert.ErrorIs(t, repo.Delete(ctx, schedule.ID()), ErrScheduleNotFound)
}

func TestSQLiteSlotRepository_CreateAndFind(t *testing.T) {
	repo := NewSQLiteSlotRepository(setupTestDB(t))
	ctx := context.Background()
	scheduleID := uuid.New()

	created, err := repo.Create(ctx, domain.Slot{
		ScheduleID: scheduleID,
		Status:     domain.SlotBusyUnavailable,
		Interval:   domain.Interval{Start: ts(14, 12, 0), End: ts(14, 13, 0)},
		Comment:    "lunch",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	// Overlap is half-open: a range ending at the slot start misses it.
	none, err := repo.FindByScheduleAndRange(ctx, scheduleID, ts(14, 11, 0), ts(14, 12, 0))
	require.NoError(t, err)
	assert.Empty(t, none)

	found, err := repo.FindByScheduleAndRange(ctx, scheduleID, ts(14, 12, 30), ts(14, 14, 0))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
	assert.Equal(t, domain.SlotBusyUnavailable, found[0].Status)
	assert.Equal(t, "lunch", found[0].Comment)
	assert.True(t, found[0].Interval.Start.Equal(ts(14, 12, 0)))
}

func TestSQLiteSlotRepository_FindByIDAndDelete(t *testing.T) {
	repo := NewSQLiteSlotRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Slot{
		ScheduleID: uuid.New(),
		Status:     domain.SlotBusyUnavailable,
		Interval:   domain.Interval{Start: ts(14, 12, 0), End: ts(14, 13, 0)},
		Comment:    "lunch",
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, domain.SlotBusyUnavailable, found.Status)
	assert.Equal(t, "lunch", found.Comment)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrSlotNotFound)
}

func TestSQLiteSlotRepository_SubSecondRangeBounds(t *testing.T) {
	repo := NewSQLiteSlotRepository(setupTestDB(t))
	ctx := context.Background()
	scheduleID := uuid.New()

	created, err := repo.Create(ctx, domain.Slot{
		ScheduleID: scheduleID,
		Status:     domain.SlotBusyUnavailable,
		Interval:   domain.Interval{Start: ts(10, 9, 0), End: ts(10, 10, 0)},
	})
	require.NoError(t, err)

	// A whole-second start must sort before a sub-second range bound. The
	// stored text keeps its fractional digits, so "09:00:00.000000000Z"
	// compares below "09:00:00.500000000Z".
	found, err := repo.FindByScheduleAndRange(ctx, scheduleID,
		ts(10, 8, 0), ts(10, 9, 0).Add(500*time.Millisecond))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	// Sub-second stored times survive the round trip.
	subSecond, err := repo.Create(ctx, domain.Slot{
		ScheduleID: scheduleID,
		Status:     domain.SlotBusy,
		Interval: domain.Interval{
			Start: ts(11, 9, 0).Add(250 * time.Millisecond),
			End:   ts(11, 10, 0),
		},
	})
	require.NoError(t, err)

	found, err = repo.FindByScheduleAndRange(ctx, scheduleID, ts(11, 9, 0), ts(11, 11, 0))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].Interval.Start.Equal(subSecond.Interval.Start))
}

func TestSQLiteSlotRepository_UpdateStatus(t *testing.T) {
	repo := NewSQLiteSlotRepository(setupTestDB(t))
	ctx := context.Background()
	scheduleID := uuid.New()

	created, err := repo.Create(ctx, domain.Slot{
		ScheduleID: scheduleID,
		Status:     domain.SlotFree,
		Interval:   domain.Interval{Start: ts(14, 9, 0), End: ts(14, 10, 0)},
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.SlotBusy))

	found, err := repo.FindByScheduleAndRange(ctx, scheduleID, ts(14, 0, 0), ts(15, 0, 0))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, domain.SlotBusy, found[0].Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), domain.SlotBusy), ErrSlotNotFound)
}

func TestSQLiteAppointmentRepository_RoundTrip(t *testing.T) {
	repo := NewSQLiteAppointmentRepository(setupTestDB(t))
	ctx := context.Background()
	scheduleID := uuid.New()

	appt, err := domain.NewAppointment(scheduleID,
		domain.Interval{Start: ts(14, 9, 0), End: ts(14, 10, 0)}, "intake")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, appt))

	found, err := repo.FindByScheduleAndRange(ctx, scheduleID, ts(14, 0, 0), ts(15, 0, 0))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, appt.ID(), found[0].ID())
	assert.Equal(t, "intake", found[0].Description())
	assert.Equal(t, domain.AppointmentBooked, found[0].Status())
	assert.False(t, found[0].InSeries())
}

func TestSQLiteAppointmentRepository_SubSecondRangeBounds(t *testing.T) {
	repo := NewSQLiteAppointmentRepository(setupTestDB(t))
	ctx := context.Background()
	scheduleID := uuid.New()

	appt, err := domain.NewAppointment(scheduleID,
		domain.Interval{Start: ts(10, 9, 0), End: ts(10, 10, 0)}, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, appt))

	found, err := repo.FindByScheduleAndRange(ctx, scheduleID,
		ts(10, 8, 0), ts(10, 9, 0).Add(500*time.Millisecond))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, appt.ID(), found[0].ID())
}

func TestSQLiteAppointmentRepository_Series(t *testing.T) {
	repo := NewSQLiteAppointmentRepository(setupTestDB(t))
	ctx := context.Background()
	scheduleID := uuid.New()
	seriesID := uuid.New()

	for i := 0; i < 3; i++ {
		appt, err := domain.NewAppointment(scheduleID,
			domain.Interval{Start: ts(2+7*i, 9, 0), End: ts(2+7*i, 10, 0)}, "")
		require.NoError(t, err)
		appt.AssignSeries(seriesID)
		require.NoError(t, repo.Create(ctx, appt))
	}

	// One appointment outside the series.
	solo, err := domain.NewAppointment(scheduleID,
		domain.Interval{Start: ts(3, 9, 0), End: ts(3, 10, 0)}, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, solo))

	members, err := repo.FindBySeries(ctx, seriesID)
	require.NoError(t, err)
	require.Len(t, members, 3)
	for i, member := range members {
		assert.Equal(t, seriesID, member.SeriesID())
		assert.True(t, member.Interval().Start.Equal(ts(2+7*i, 9, 0)))
	}
}

func TestSQLiteAppointmentRepository_Update(t *testing.T) {
	repo := NewSQLiteAppointmentRepository(setupTestDB(t))
	ctx := context.Background()
	scheduleID := uuid.New()

	appt, err := domain.NewAppointment(scheduleID,
		domain.Interval{Start: ts(14, 9, 0), End: ts(14, 10, 0)}, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, appt))

	appt.Cancel()
	require.NoError(t, repo.Update(ctx, appt))

	found, err := repo.FindByScheduleAndRange(ctx, scheduleID, ts(14, 0, 0), ts(15, 0, 0))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].IsCancelled())

	missing, err := domain.NewAppointment(scheduleID,
		domain.Interval{Start: ts(15, 9, 0), End: ts(15, 10, 0)}, "")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrAppointmentNotFound)
}
