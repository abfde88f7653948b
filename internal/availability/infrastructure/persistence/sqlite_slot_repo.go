package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
)

// SQLiteSlotRepository implements domain.SlotRepository using SQLite.
type SQLiteSlotRepository struct {
	dbConn *sql.DB
}

// NewSQLiteSlotRepository creates a new SQLite slot repository.
func NewSQLiteSlotRepository(dbConn *sql.DB) *SQLiteSlotRepository {
	return &SQLiteSlotRepository{dbConn: dbConn}
}

// Create persists a slot, assigning it an identity.
func (r *SQLiteSlotRepository) Create(ctx context.Context, slot domain.Slot) (domain.Slot, error) {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	query := `
		INSERT INTO slots (id, schedule_id, status, start_time, end_time, comment)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.dbConn.ExecContext(ctx, query,
		slot.ID.String(),
		slot.ScheduleID.String(),
		string(slot.Status),
		formatSQLiteTime(slot.Interval.Start),
		formatSQLiteTime(slot.Interval.End),
		slot.Comment,
	)
	if err != nil {
		return domain.Slot{}, err
	}
	return slot, nil
}

// FindByID retrieves a slot by its ID.
func (r *SQLiteSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Slot, error) {
	query := `
		SELECT id, schedule_id, status, start_time, end_time, comment
		FROM slots
		WHERE id = ?
	`

	var rawID, rawScheduleID, status, startTime, endTime, comment string
	err := r.dbConn.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID, &rawScheduleID, &status, &startTime, &endTime, &comment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Slot{}, ErrSlotNotFound
		}
		return domain.Slot{}, err
	}
	return sqliteRowToSlot(rawID, rawScheduleID, status, startTime, endTime, comment)
}

// UpdateStatus changes the status of a persisted slot.
func (r *SQLiteSlotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SlotStatus) error {
	result, err := r.dbConn.ExecContext(ctx,
		`UPDATE slots SET status = ? WHERE id = ?`, string(status), id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// FindByScheduleAndRange returns the slots overlapping [from, to), ordered
// by start time. Stored times use the fixed-width UTC layout, so the overlap
// predicate compares lexicographically on the stored text.
func (r *SQLiteSlotRepository) FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]domain.Slot, error) {
	query := `
		SELECT id, schedule_id, status, start_time, end_time, comment
		FROM slots
		WHERE schedule_id = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time
	`

	rows, err := r.dbConn.QueryContext(ctx, query,
		scheduleID.String(),
		formatSQLiteTime(to),
		formatSQLiteTime(from),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var rawID, rawScheduleID, status, startTime, endTime, comment string
		if err := rows.Scan(&rawID, &rawScheduleID, &status, &startTime, &endTime, &comment); err != nil {
			return nil, err
		}

		slot, err := sqliteRowToSlot(rawID, rawScheduleID, status, startTime, endTime, comment)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// Delete removes a slot from the database.
func (r *SQLiteSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.dbConn.ExecContext(ctx, `DELETE FROM slots WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func sqliteRowToSlot(rawID, rawScheduleID, status, startTime, endTime, comment string) (domain.Slot, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.Slot{}, err
	}
	scheduleID, err := uuid.Parse(rawScheduleID)
	if err != nil {
		return domain.Slot{}, err
	}
	start, err := time.Parse(time.RFC3339Nano, startTime)
	if err != nil {
		return domain.Slot{}, err
	}
	end, err := time.Parse(time.RFC3339Nano, endTime)
	if err != nil {
		return domain.Slot{}, err
	}
	return domain.Slot{
		ID:         id,
		ScheduleID: scheduleID,
		Status:     domain.SlotStatus(status),
		Interval:   domain.Interval{Start: start, End: end},
		Comment:    comment,
	}, nil
}
