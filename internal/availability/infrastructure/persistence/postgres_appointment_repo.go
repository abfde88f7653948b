package persistence

import (
	"context"
	"time"

	"github.com/praxisdesk/availability/internal/availability/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAppointmentRepository implements domain.AppointmentRepository using PostgreSQL.
type PostgresAppointmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAppointmentRepository creates a new PostgreSQL appointment repository.
func NewPostgresAppointmentRepository(pool *pgxpool.Pool) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{pool: pool}
}

// appointmentRow represents a database row for appointments.
type appointmentRow struct {
	ID          uuid.UUID
	ScheduleID  uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	Status      string
	SeriesID    *uuid.UUID
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Create persists a new appointment.
func (r *PostgresAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, schedule_id, start_time, end_time, status, series_id,
			description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var seriesID *uuid.UUID
	if appt.InSeries() {
		id := appt.SeriesID()
		seriesID = &id
	}

	_, err := r.pool.Exec(ctx, query,
		appt.ID(),
		appt.ScheduleID(),
		appt.Interval().Start,
		appt.Interval().End,
		string(appt.Status()),
		seriesID,
		appt.Description(),
		appt.CreatedAt(),
		appt.UpdatedAt(),
	)
	return err
}

// Update rewrites the mutable fields of an existing appointment.
func (r *PostgresAppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		appt.ID(),
		string(appt.Status()),
		appt.Description(),
		appt.UpdatedAt(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// FindByScheduleAndRange returns the appointments overlapping [from, to),
// ordered by start time.
func (r *PostgresAppointmentRepository) FindByScheduleAndRange(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	query := `
		SELECT id, schedule_id, start_time, end_time, status, series_id,
		       description, created_at, updated_at
		FROM appointments
		WHERE schedule_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, scheduleID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// FindBySeries returns every appointment tagged with the series ID, ordered
// by start time.
func (r *PostgresAppointmentRepository) FindBySeries(ctx context.Context, seriesID uuid.UUID) ([]*domain.Appointment, error) {
	query := `
		SELECT id, schedule_id, start_time, end_time, status, series_id,
		       description, created_at, updated_at
		FROM appointments
		WHERE series_id = $1
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)
	for rows.Next() {
		var row appointmentRow
		err := rows.Scan(
			&row.ID,
			&row.ScheduleID,
			&row.StartTime,
			&row.EndTime,
			&row.Status,
			&row.SeriesID,
			&row.Description,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		seriesID := uuid.Nil
		if row.SeriesID != nil {
			seriesID = *row.SeriesID
		}

		appts = append(appts, domain.RehydrateAppointment(
			row.ID,
			row.ScheduleID,
			domain.Interval{Start: row.StartTime, End: row.EndTime},
			domain.AppointmentStatus(row.Status),
			seriesID,
			row.Description,
			row.CreatedAt,
			row.UpdatedAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appts, nil
}
