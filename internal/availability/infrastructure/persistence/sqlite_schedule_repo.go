package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
)

// sqliteTimeLayout is the fixed-width UTC layout all SQLite timestamps are
// stored in. RFC3339Nano trims trailing zeros, which breaks lexicographic
// comparison ('Z' sorts after '.'), so sub-second digits are always written.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// SQLiteScheduleRepository implements domain.ScheduleRepository using SQLite.
type SQLiteScheduleRepository struct {
	dbConn *sql.DB
}

// NewSQLiteScheduleRepository creates a new SQLite schedule repository.
func NewSQLiteScheduleRepository(dbConn *sql.DB) *SQLiteScheduleRepository {
	return &SQLiteScheduleRepository{dbConn: dbConn}
}

// Save persists a schedule, replacing its stored extension blocks.
func (r *SQLiteScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	extensions, err := marshalExtensions(schedule)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedules (id, name, extensions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			extensions = excluded.extensions,
			updated_at = excluded.updated_at
	`

	_, err = r.dbConn.ExecContext(ctx, query,
		schedule.ID().String(),
		schedule.Name(),
		string(extensions),
		formatSQLiteTime(schedule.CreatedAt()),
		formatSQLiteTime(schedule.UpdatedAt()),
	)
	return err
}

// FindByID retrieves a schedule by its ID. Returns nil, nil when absent.
func (r *SQLiteScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	query := `
		SELECT id, name, extensions, created_at, updated_at
		FROM schedules
		WHERE id = ?
	`

	var (
		rawID      string
		name       string
		extensions string
		createdAt  string
		updatedAt  string
	)
	err := r.dbConn.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID, &name, &extensions, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	row, err := sqliteScheduleRow(rawID, name, extensions, createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	return rowToSchedule(row)
}

// Delete removes a schedule from the database.
func (r *SQLiteScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.dbConn.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func sqliteScheduleRow(rawID, name, extensions, createdAt, updatedAt string) (scheduleRow, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return scheduleRow{}, err
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return scheduleRow{}, err
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return scheduleRow{}, err
	}
	return scheduleRow{
		ID:         id,
		Name:       name,
		Extensions: []byte(extensions),
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}
