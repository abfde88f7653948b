package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSlotRepository implements domain.SlotRepository using PostgreSQL.
type PostgresSlotRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSlotRepository creates a new PostgreSQL slot repository.
func NewPostgresSlotRepository(pool *pgxpool.Pool) *PostgresSlotRepository {
	return &PostgresSlotRepository{pool: pool}
}

// slotRow represents a database row for slots.
type slotRow struct {
	ID         uuid.UUID
	ScheduleID uuid.UUID
	Status     string
	StartTime  time.Time
	EndTime    time.Time
	Comment    string
}

// Create persists a slot, assigning it an identity.
func (r *PostgresSlotRepository) Create(ctx context.Context, slot domain.Slot) (domain.Slot, error) {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	query := `
		INSERT INTO slots (id, schedule_id, status, start_time, end_time, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		slot.ID,
		slot.ScheduleID,
		string(slot.Status),
		slot.Interval.Start,
		slot.Interval.End,
		slot.Comment,
	)
	if err != nil {
		return domain.Slot{}, err
	}
	return slot, nil
}

// FindByID retrieves a slot by its ID.
func (r *PostgresSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Slot, error) {
	query := `
		SELECT id, schedule_id, status, start_time, end_time, comment
		FROM slots
		WHERE id = $1
	`

	var row slotRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.ScheduleID,
		&row.Status,
		&row.StartTime,
		&row.EndTime,
		&row.Comment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Slot{}, ErrSlotNotFound
		}
		return domain.Slot{}, err
	}
	return domain.Slot{
		ID:         row.ID,
		ScheduleID: row.ScheduleID,
		Status:     domain.SlotStatus(row.Status),
		Interval:   domain.Interval{Start: row.StartTime, End: row.EndTime},
		Comment:    row.Comment,
	}, nil
}

// UpdateStatus changes the status of a persisted slot.
func (r *PostgresSlotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SlotStatus) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE slots SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// FindByScheduleAndRange returns the slots overlapping [from, to), ordered
// by start time.
func (r *PostgresSlotRepository) FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]domain.Slot, error) {
	query := `
		SELECT id, schedule_id, status, start_time, end_time, comment
		FROM slots
		WHERE schedule_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, scheduleID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var row slotRow
		err := rows.Scan(
			&row.ID,
			&row.ScheduleID,
			&row.Status,
			&row.StartTime,
			&row.EndTime,
			&row.Comment,
		)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.Slot{
			ID:         row.ID,
			ScheduleID: row.ScheduleID,
			Status:     domain.SlotStatus(row.Status),
			Interval:   domain.Interval{Start: row.StartTime, End: row.EndTime},
			Comment:    row.Comment,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// Delete removes a slot from the database.
func (r *PostgresSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}
