package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/export"
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
)

const prefixedVitalColumns = `
	v.id, v.usn, v.weight, v.height, v.bmi, v.blood_pressure_systolic, v.blood_pressure_diastolic,
	v.heart_rate, v.temperature, v.respiratory_rate, v.oxygen_saturation, v.notes, v.recorded_at, v.recorded_by`

const prefixedPrescriptionColumns = `
	p.id, p.usn, p.diagnosis, p.medications, p.notes, p.follow_up_date, p.prescribed_at,
	p.prescribed_by, p.status, p.patient_name, p.patient_age, p.patient_gender`

type ExportRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewExportRepository(db *sql.DB, log *slog.Logger) *ExportRepository {
	return &ExportRepository{
		db:  db,
		log: log.With("component", "export_repository"),
	}
}

func (r *ExportRepository) Patients(ctx context.Context) ([]patient.Patient, error) {
	const query = `SELECT ` + patientColumns + ` FROM patients ORDER BY full_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("failed to export patients", "error", err)
		return nil, fmt.Errorf("export patients: %w", err)
	}
	defer rows.Close()

	return scanPatients(rows)
}

func (r *ExportRepository) Vitals(ctx context.Context) ([]export.VitalRow, error) {
	const query = `
		SELECT ` + prefixedVitalColumns + `, pa.full_name
		FROM vitals v
		LEFT JOIN patients pa ON v.usn = pa.usn
		ORDER BY v.recorded_at DESC, v.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("failed to export vitals", "error", err)
		return nil, fmt.Errorf("export vitals: %w", err)
	}
	defer rows.Close()

	list := make([]export.VitalRow, 0)
	for rows.Next() {
		var name sql.Null[string]
		v, err := scanVital(rows, &name)
		if err != nil {
			return nil, fmt.Errorf("scan vital: %w", err)
		}
		list = append(list, export.VitalRow{Vital: v, PatientName: ptr(name)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vitals: %w", err)
	}
	return list, nil
}

func (r *ExportRepository) Prescriptions(ctx context.Context) ([]export.PrescriptionRow, error) {
	const query = `
		SELECT ` + prefixedPrescriptionColumns + `, pa.full_name, pa.contact, pa.address
		FROM prescriptions p
		LEFT JOIN patients pa ON p.usn = pa.usn
		ORDER BY p.prescribed_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("failed to export prescriptions", "error", err)
		return nil, fmt.Errorf("export prescriptions: %w", err)
	}
	defer rows.Close()

	list := make([]export.PrescriptionRow, 0)
	for rows.Next() {
		var name, contact, address sql.Null[string]
		p, raw, err := scanPrescription(rows, &name, &contact, &address)
		if err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		list = append(list, export.PrescriptionRow{
			Prescription:   p,
			RawMedications: raw,
			FullName:       ptr(name),
			Contact:        ptr(contact),
			Address:        ptr(address),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prescriptions: %w", err)
	}
	return list, nil
}

// Summaries собирает по каждому пациенту последний замер и счётчики документов.
func (r *ExportRepository) Summaries(ctx context.Context) ([]export.Summary, error) {
	const query = `
		SELECT
			pa.usn, pa.full_name, pa.age, pa.gender, pa.contact, pa.address,
			v.id, v.weight, v.height, v.bmi, v.blood_pressure_systolic, v.blood_pressure_diastolic,
			v.heart_rate, v.temperature, v.oxygen_saturation, v.respiratory_rate, v.recorded_at,
			(SELECT COUNT(*) FROM vitals WHERE usn = pa.usn),
			(SELECT COUNT(*) FROM prescriptions WHERE usn = pa.usn),
			(SELECT diagnosis FROM prescriptions WHERE usn = pa.usn ORDER BY prescribed_at DESC, id DESC LIMIT 1),
			(SELECT notes FROM prescriptions WHERE usn = pa.usn ORDER BY prescribed_at DESC, id DESC LIMIT 1)
		FROM patients pa
		LEFT JOIN vitals v ON v.id = (
			SELECT id FROM vitals WHERE usn = pa.usn ORDER BY recorded_at DESC, id DESC LIMIT 1
		)
		ORDER BY pa.full_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("failed to export summaries", "error", err)
		return nil, fmt.Errorf("export summaries: %w", err)
	}
	defer rows.Close()

	list := make([]export.Summary, 0)
	for rows.Next() {
		var (
			s                      export.Summary
			id                     sql.Null[int64]
			weight, height, temp   sql.Null[float64]
			bmi                    sql.Null[float64]
			sys, dia, hr, o2, resp sql.Null[int]
			recordedAt             sql.Null[string]
			diagnosis, notes       sql.Null[string]
		)
		if err := rows.Scan(
			&s.USN, &s.FullName, &s.Age, &s.Gender, &s.Contact, &s.Address,
			&id, &weight, &height, &bmi, &sys, &dia,
			&hr, &temp, &o2, &resp, &recordedAt,
			&s.TotalVitals, &s.TotalPrescriptions, &diagnosis, &notes,
		); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if id.Valid {
			s.Latest = &vital.Vital{
				ID:               id.V,
				USN:              s.USN,
				Weight:           weight.V,
				Height:           height.V,
				BMI:              ptr(bmi),
				Systolic:         sys.V,
				Diastolic:        dia.V,
				HeartRate:        hr.V,
				Temperature:      temp.V,
				OxygenSaturation: ptr(o2),
				RespiratoryRate:  ptr(resp),
				RecordedAt:       recordedAt.V,
			}
		}
		s.LatestDiagnosis, s.LatestNotes = ptr(diagnosis), ptr(notes)
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return list, nil
}

func (r *ExportRepository) Legacy(ctx context.Context) (export.Legacy, error) {
	const (
		patientsQuery = `SELECT ` + patientColumns + ` FROM patients ORDER BY rowid`
		vitalsQuery   = `
			SELECT ` + prefixedVitalColumns + `
			FROM vitals v
			WHERE v.id = (
				SELECT id FROM vitals WHERE usn = v.usn ORDER BY recorded_at DESC, id DESC LIMIT 1
			)`
		prescriptionsQuery = `SELECT ` + prefixedPrescriptionColumns + ` FROM prescriptions p ORDER BY p.id`
	)

	out := export.Legacy{LatestVitals: make(map[string]vital.Vital)}

	rows, err := r.db.QueryContext(ctx, patientsQuery)
	if err != nil {
		r.log.Error("failed to export patients", "error", err)
		return export.Legacy{}, fmt.Errorf("export patients: %w", err)
	}
	out.Patients, err = scanPatients(rows)
	rows.Close()
	if err != nil {
		return export.Legacy{}, err
	}

	if err := r.each(ctx, vitalsQuery, func(rows *sql.Rows) error {
		v, err := scanVital(rows)
		if err != nil {
			return fmt.Errorf("scan vital: %w", err)
		}
		out.LatestVitals[v.USN] = v
		return nil
	}); err != nil {
		return export.Legacy{}, err
	}

	out.Prescriptions = make([]prescription.Prescription, 0)
	if err := r.each(ctx, prescriptionsQuery, func(rows *sql.Rows) error {
		p, _, err := scanPrescription(rows)
		if err != nil {
			return fmt.Errorf("scan prescription: %w", err)
		}
		out.Prescriptions = append(out.Prescriptions, p)
		return nil
	}); err != nil {
		return export.Legacy{}, err
	}

	return out, nil
}

func (r *ExportRepository) each(ctx context.Context, query string, fn func(rows *sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("failed to run export query", "error", err)
		return fmt.Errorf("export query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
