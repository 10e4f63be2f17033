package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/vital"
)

const vitalColumns = `
	id, usn, weight, height, bmi, blood_pressure_systolic, blood_pressure_diastolic,
	heart_rate, temperature, respiratory_rate, oxygen_saturation, notes, recorded_at, recorded_by`

type VitalRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewVitalRepository(db *sql.DB, log *slog.Logger) *VitalRepository {
	return &VitalRepository{
		db:  db,
		log: log.With("component", "vital_repository"),
	}
}

func (r *VitalRepository) List(ctx context.Context, usn string) ([]vital.Vital, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if usn != "" {
		const query = `SELECT ` + vitalColumns + ` FROM vitals WHERE usn = ? ORDER BY recorded_at DESC, id DESC`
		rows, err = r.db.QueryContext(ctx, query, usn)
	} else {
		const query = `SELECT ` + vitalColumns + ` FROM vitals ORDER BY recorded_at DESC, id DESC`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		r.log.Error("failed to list vitals", "usn", usn, "error", err)
		return nil, fmt.Errorf("list vitals: %w", err)
	}
	defer rows.Close()

	list := make([]vital.Vital, 0)
	for rows.Next() {
		v, err := scanVital(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vital: %w", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vitals: %w", err)
	}
	return list, nil
}

func (r *VitalRepository) Get(ctx context.Context, id int64) (vital.Vital, error) {
	const query = `SELECT ` + vitalColumns + ` FROM vitals WHERE id = ?`

	v, err := scanVital(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vital.Vital{}, vital.ErrNotFound
		}
		r.log.Error("failed to get vital", "id", id, "error", err)
		return vital.Vital{}, fmt.Errorf("get vital: %w", err)
	}
	return v, nil
}

func (r *VitalRepository) Upsert(ctx context.Context, v vital.Vital) (int64, error) {
	id, err := upsertVital(ctx, r.db, v)
	if err != nil {
		r.log.Error("failed to save vital", "usn", v.USN, "error", err)
		return 0, err
	}
	return id, nil
}

func (r *VitalRepository) PatientExists(ctx context.Context, usn string) (bool, error) {
	return patientExists(ctx, r.db, usn)
}

func scanVital(row scanner, extra ...any) (vital.Vital, error) {
	var (
		v          vital.Vital
		bmi        sql.Null[float64]
		resp, o2   sql.Null[int]
		notes      sql.Null[string]
		recordedBy sql.NullString
	)
	dest := []any{
		&v.ID, &v.USN, &v.Weight, &v.Height, &bmi, &v.Systolic, &v.Diastolic,
		&v.HeartRate, &v.Temperature, &resp, &o2, &notes, &v.RecordedAt, &recordedBy,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return vital.Vital{}, err
	}
	v.BMI = ptr(bmi)
	v.RespiratoryRate = ptr(resp)
	v.OxygenSaturation = ptr(o2)
	v.Notes = ptr(notes)
	v.RecordedBy = orDefault(recordedBy, vital.DefaultRecordedBy)
	return v, nil
}
