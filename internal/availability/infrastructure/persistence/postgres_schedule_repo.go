// Package persistence provides PostgreSQL and SQLite implementations of the
// availability repositories. Availability configurations are persisted in
// their extension representation, so the store holds exactly what external
// consumers of the schedule resource see.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/praxisdesk/availability/internal/availability/codec"
	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// PostgresScheduleRepository implements domain.ScheduleRepository using PostgreSQL.
type PostgresScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresScheduleRepository creates a new PostgreSQL schedule repository.
func NewPostgresScheduleRepository(pool *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{pool: pool}
}

// scheduleRow represents a database row for schedules.
type scheduleRow struct {
	ID         uuid.UUID
	Name       string
	Extensions []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Save persists a schedule, replacing its stored extension blocks.
func (r *PostgresScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	extensions, err := marshalExtensions(schedule)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedules (id, name, extensions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			extensions = EXCLUDED.extensions,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.pool.Exec(ctx, query,
		schedule.ID(),
		schedule.Name(),
		extensions,
		schedule.CreatedAt(),
		schedule.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a schedule by its ID. Returns nil, nil when absent.
func (r *PostgresScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	query := `
		SELECT id, name, extensions, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`

	var row scheduleRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.Name,
		&row.Extensions,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToSchedule(row)
}

// Delete removes a schedule from the database.
func (r *PostgresScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func marshalExtensions(schedule *domain.Schedule) ([]byte, error) {
	blocks := codec.EncodeAll(schedule.DefaultConfig(), schedule.Overrides())
	data, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extensions: %w", err)
	}
	return data, nil
}

func rowToSchedule(row scheduleRow) (*domain.Schedule, error) {
	var blocks []codec.Extension
	if len(row.Extensions) > 0 {
		if err := json.Unmarshal(row.Extensions, &blocks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal extensions: %w", err)
		}
	}
	def, overrides, err := codec.DecodeAll(blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to decode extensions: %w", err)
	}

	return domain.RehydrateSchedule(row.ID, row.Name, def, overrides, row.CreatedAt, row.UpdatedAt), nil
}
