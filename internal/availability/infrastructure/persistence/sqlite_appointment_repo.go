package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
)

// SQLiteAppointmentRepository implements domain.AppointmentRepository using SQLite.
type SQLiteAppointmentRepository struct {
	dbConn *sql.DB
}

// NewSQLiteAppointmentRepository creates a new SQLite appointment repository.
func NewSQLiteAppointmentRepository(dbConn *sql.DB) *SQLiteAppointmentRepository {
	return &SQLiteAppointmentRepository{dbConn: dbConn}
}

// Create persists a new appointment.
func (r *SQLiteAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, schedule_id, start_time, end_time, status, series_id,
			description, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var seriesID sql.NullString
	if appt.InSeries() {
		seriesID = sql.NullString{String: appt.SeriesID().String(), Valid: true}
	}

	_, err := r.dbConn.ExecContext(ctx, query,
		appt.ID().String(),
		appt.ScheduleID().String(),
		formatSQLiteTime(appt.Interval().Start),
		formatSQLiteTime(appt.Interval().End),
		string(appt.Status()),
		seriesID,
		appt.Description(),
		formatSQLiteTime(appt.CreatedAt()),
		formatSQLiteTime(appt.UpdatedAt()),
	)
	return err
}

// Update rewrites the mutable fields of an existing appointment.
func (r *SQLiteAppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET status = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.dbConn.ExecContext(ctx, query,
		string(appt.Status()),
		appt.Description(),
		formatSQLiteTime(appt.UpdatedAt()),
		appt.ID().String(),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// FindByScheduleAndRange returns the appointments overlapping [from, to),
// ordered by start time.
func (r *SQLiteAppointmentRepository) FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	query := `
		SELECT id, schedule_id, start_time, end_time, status, series_id,
		       description, created_at, updated_at
		FROM appointments
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

	return scanSQLiteAppointments(rows)
}

// FindBySeries returns every appointment tagged with the series ID, ordered
// by start time.
func (r *SQLiteAppointmentRepository) FindBySeries(ctx context.Context, seriesID uuid.UUID) ([]*domain.Appointment, error) {
	query := `
		SELECT id, schedule_id, start_time, end_time, status, series_id,
		       description, created_at, updated_at
		FROM appointments
		WHERE series_id = ?
		ORDER BY start_time
	`

	rows, err := r.dbConn.QueryContext(ctx, query, seriesID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSQLiteAppointments(rows)
}

func scanSQLiteAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)
	for rows.Next() {
		var (
			rawID, rawScheduleID, startTime, endTime, status string
			rawSeriesID                                      sql.NullString
			description, createdAt, updatedAt                string
		)
		err := rows.Scan(&rawID, &rawScheduleID, &startTime, &endTime, &status,
			&rawSeriesID, &description, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		appt, err := sqliteRowToAppointment(rawID, rawScheduleID, startTime, endTime,
			status, rawSeriesID, description, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appts, nil
}

func sqliteRowToAppointment(
	rawID, rawScheduleID, startTime, endTime, status string,
	rawSeriesID sql.NullString,
	description, createdAt, updatedAt string,
) (*domain.Appointment, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	scheduleID, err := uuid.Parse(rawScheduleID)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339Nano, startTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339Nano, endTime)
	if err != nil {
		return nil, err
	}
	seriesID := uuid.Nil
	if rawSeriesID.Valid {
		seriesID, err = uuid.Parse(rawSeriesID.String)
		if err != nil {
			return nil, err
		}
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateAppointment(
		id,
		scheduleID,
		domain.Interval{Start: start, End: end},
		domain.AppointmentStatus(status),
		seriesID,
		description,
		created,
		updated,
	), nil
}
