package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/patient"
)

const patientColumns = `usn, full_name, age, gender, contact, address`

type PatientRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewPatientRepository(db *sql.DB, log *slog.Logger) *PatientRepository {
	return &PatientRepository{
		db:  db,
		log: log.With("component", "patient_repository"),
	}
}

func (r *PatientRepository) List(ctx context.Context) ([]patient.Patient, error) {
	const query = `SELECT ` + patientColumns + ` FROM patients ORDER BY full_name COLLATE NOCASE`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("failed to list patients", "error", err)
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	return scanPatients(rows)
}

func (r *PatientRepository) Get(ctx context.Context, usn string) (patient.Patient, error) {
	const query = `SELECT ` + patientColumns + ` FROM patients WHERE usn = ?`

	p, err := scanPatient(r.db.QueryRowContext(ctx, query, usn))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patient.Patient{}, patient.ErrNotFound
		}
		r.log.Error("failed to get patient", "usn", usn, "error", err)
		return patient.Patient{}, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (r *PatientRepository) FindByUSNOrContact(ctx context.Context, q string) (patient.Patient, error) {
	// Совпадение по USN важнее совпадения по телефону
	const query = `
		SELECT ` + patientColumns + ` FROM patients
		WHERE usn = ? OR contact = ?
		ORDER BY usn = ? DESC
		LIMIT 1`

	p, err := scanPatient(r.db.QueryRowContext(ctx, query, q, q, q))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patient.Patient{}, patient.ErrNotFound
		}
		r.log.Error("failed to find patient", "query", q, "error", err)
		return patient.Patient{}, fmt.Errorf("find patient: %w", err)
	}
	return p, nil
}

func (r *PatientRepository) Upsert(ctx context.Context, p patient.Patient) error {
	if err := upsertPatient(ctx, r.db, p); err != nil {
		r.log.Error("failed to save patient", "usn", p.USN, "error", err)
		return err
	}
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, p patient.Patient) (bool, error) {
	const query = `
		UPDATE patients
		SET full_name = ?, age = ?, gender = ?, contact = ?, address = ?
		WHERE usn = ?`

	res, err := r.db.ExecContext(ctx, query, p.FullName, p.Age, p.Gender, p.Contact, p.Address, p.USN)
	if err != nil {
		r.log.Error("failed to update patient", "usn", p.USN, "error", err)
		return false, fmt.Errorf("update patient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update patient: %w", err)
	}
	return n > 0, nil
}

// Delete удаляет карточку. Замеры, рецепты и прочие документы уходят каскадом.
func (r *PatientRepository) Delete(ctx context.Context, usn string) (bool, error) {
	const query = `DELETE FROM patients WHERE usn = ?`

	res, err := r.db.ExecContext(ctx, query, usn)
	if err != nil {
		r.log.Error("failed to delete patient", "usn", usn, "error", err)
		return false, fmt.Errorf("delete patient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete patient: %w", err)
	}
	return n > 0, nil
}

func scanPatient(row scanner) (patient.Patient, error) {
	var p patient.Patient
	err := row.Scan(&p.USN, &p.FullName, &p.Age, &p.Gender, &p.Contact, &p.Address)
	return p, err
}

func scanPatients(rows *sql.Rows) ([]patient.Patient, error) {
	list := make([]patient.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return list, nil
}
