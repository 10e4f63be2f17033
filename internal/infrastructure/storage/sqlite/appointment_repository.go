package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/appointment"
)

const appointmentColumns = `id, usn, starts_at, ends_at, status, title, clinician, notes`

type AppointmentRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewAppointmentRepository(db *sql.DB, log *slog.Logger) *AppointmentRepository {
	return &AppointmentRepository{
		db:  db,
		log: log.With("component", "appointment_repository"),
	}
}

// List с limit <= 0 возвращает все подходящие записи.
func (r *AppointmentRepository) List(ctx context.Context, usn string, limit int) ([]appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	args := make([]any, 0, 2)
	if usn != "" {
		query += ` WHERE usn = ?`
		args = append(args, usn)
	}
	query += ` ORDER BY starts_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list appointments", "usn", usn, "error", err)
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	list := make([]appointment.Appointment, 0)
	for rows.Next() {
		var (
			a                       appointment.Appointment
			title, clinician, notes sql.Null[string]
		)
		if err := rows.Scan(&a.ID, &a.USN, &a.StartsAt, &a.EndsAt, &a.Status, &title, &clinician, &notes); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		a.Title, a.Clinician, a.Notes = ptr(title), ptr(clinician), ptr(notes)
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return list, nil
}

func (r *AppointmentRepository) PatientExists(ctx context.Context, usn string) (bool, error) {
	return patientExists(ctx, r.db, usn)
}

func (r *AppointmentRepository) Create(ctx context.Context, a appointment.Appointment) (int64, error) {
	const query = `
		INSERT INTO appointments (usn, starts_at, ends_at, status, title, clinician, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		a.USN, a.StartsAt, a.EndsAt, a.Status, arg(a.Title), arg(a.Clinician), arg(a.Notes))
	if err != nil {
		r.log.Error("failed to create appointment", "usn", a.USN, "error", err)
		return 0, fmt.Errorf("create appointment: %w", err)
	}
	return res.LastInsertId()
}

// Update меняет только переданные поля.
func (r *AppointmentRepository) Update(ctx context.Context, id int64, p appointment.Patch) (bool, error) {
	const query = `
		UPDATE appointments SET
			status = COALESCE(?, status),
			title = COALESCE(?, title),
			clinician = COALESCE(?, clinician),
			notes = COALESCE(?, notes),
			starts_at = COALESCE(?, starts_at),
			ends_at = COALESCE(?, ends_at)
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		arg(p.Status), arg(p.Title), arg(p.Clinician), arg(p.Notes), arg(p.StartsAt), arg(p.EndsAt), id)
	if err != nil {
		r.log.Error("failed to update appointment", "id", id, "error", err)
		return false, fmt.Errorf("update appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update appointment: %w", err)
	}
	return n > 0, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM appointments WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.log.Error("failed to delete appointment", "id", id, "error", err)
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}
