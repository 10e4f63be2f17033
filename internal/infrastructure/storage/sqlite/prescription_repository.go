package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/prescription"
)

const prescriptionColumns = `
	id, usn, diagnosis, medications, notes, follow_up_date, prescribed_at,
	prescribed_by, status, patient_name, patient_age, patient_gender`

type PrescriptionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewPrescriptionRepository(db *sql.DB, log *slog.Logger) *PrescriptionRepository {
	return &PrescriptionRepository{
		db:  db,
		log: log.With("component", "prescription_repository"),
	}
}

func (r *PrescriptionRepository) List(ctx context.Context, usn string) ([]prescription.Prescription, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if usn != "" {
		const query = `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE usn = ? ORDER BY prescribed_at DESC, id DESC`
		rows, err = r.db.QueryContext(ctx, query, usn)
	} else {
		const query = `SELECT ` + prescriptionColumns + ` FROM prescriptions ORDER BY prescribed_at DESC, id DESC`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		r.log.Error("failed to list prescriptions", "usn", usn, "error", err)
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer rows.Close()

	list := make([]prescription.Prescription, 0)
	for rows.Next() {
		p, _, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prescriptions: %w", err)
	}
	return list, nil
}

func (r *PrescriptionRepository) Get(ctx context.Context, id int64) (prescription.Prescription, error) {
	const query = `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE id = ?`

	p, _, err := scanPrescription(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return prescription.Prescription{}, prescription.ErrNotFound
		}
		r.log.Error("failed to get prescription", "id", id, "error", err)
		return prescription.Prescription{}, fmt.Errorf("get prescription: %w", err)
	}
	return p, nil
}

func (r *PrescriptionRepository) Upsert(ctx context.Context, p prescription.Prescription) (int64, error) {
	id, err := upsertPrescription(ctx, r.db, p)
	if err != nil {
		r.log.Error("failed to save prescription", "usn", p.USN, "error", err)
		return 0, err
	}
	return id, nil
}

func (r *PrescriptionRepository) FindPatient(ctx context.Context, usn string) (*prescription.PatientInfo, error) {
	const query = `SELECT ` + patientColumns + ` FROM patients WHERE usn = ?`

	p, err := scanPatient(r.db.QueryRowContext(ctx, query, usn))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, prescription.ErrPatientNotFound
		}
		r.log.Error("failed to find patient", "usn", usn, "error", err)
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return &prescription.PatientInfo{
		USN:      p.USN,
		FullName: p.FullName,
		Age:      p.Age,
		Gender:   p.Gender,
		Contact:  p.Contact,
		Address:  p.Address,
	}, nil
}

func (r *PrescriptionRepository) AddItem(ctx context.Context, item prescription.Item) (int64, error) {
	const (
		findMedication   = `SELECT id FROM medications WHERE name = ? ORDER BY id LIMIT 1`
		insertMedication = `INSERT INTO medications (name) VALUES (?)`
		insertItem       = `
			INSERT INTO prescription_items (
				prescription_id, medication_id, dose, route, frequency, duration_days, instructions)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	)

	var itemID int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var medID int64
		err := tx.QueryRowContext(ctx, findMedication, item.MedicationName).Scan(&medID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			res, err := tx.ExecContext(ctx, insertMedication, item.MedicationName)
			if err != nil {
				return fmt.Errorf("insert medication: %w", err)
			}
			if medID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("insert medication: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find medication: %w", err)
		}

		res, err := tx.ExecContext(ctx, insertItem,
			item.PrescriptionID, medID, arg(item.Dose), arg(item.Route), arg(item.Frequency),
			arg(item.DurationDays), arg(item.Instructions),
		)
		if err != nil {
			return fmt.Errorf("insert prescription item: %w", err)
		}
		itemID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		r.log.Error("failed to add prescription item",
			"prescription_id", item.PrescriptionID, "error", err)
		return 0, err
	}
	return itemID, nil
}

func (r *PrescriptionRepository) Items(ctx context.Context, prescriptionID int64) ([]prescription.Item, error) {
	const query = `
		SELECT pi.id, pi.prescription_id, pi.medication_id, m.name,
		       pi.dose, pi.route, pi.frequency, pi.duration_days, pi.instructions
		FROM prescription_items pi
		JOIN medications m ON m.id = pi.medication_id
		WHERE pi.prescription_id = ?
		ORDER BY pi.id`

	rows, err := r.db.QueryContext(ctx, query, prescriptionID)
	if err != nil {
		r.log.Error("failed to list prescription items", "prescription_id", prescriptionID, "error", err)
		return nil, fmt.Errorf("list prescription items: %w", err)
	}
	defer rows.Close()

	items := make([]prescription.Item, 0)
	for rows.Next() {
		var (
			it                      prescription.Item
			dose, route, freq, inst sql.Null[string]
			days                    sql.Null[int]
		)
		if err := rows.Scan(
			&it.ID, &it.PrescriptionID, &it.MedicationID, &it.MedicationName,
			&dose, &route, &freq, &days, &inst,
		); err != nil {
			return nil, fmt.Errorf("scan prescription item: %w", err)
		}
		it.Dose = ptr(dose)
		it.Route = ptr(route)
		it.Frequency = ptr(freq)
		it.DurationDays = ptr(days)
		it.Instructions = ptr(inst)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prescription items: %w", err)
	}
	return items, nil
}

// scanPrescription возвращает также исходный текст колонки medications.
// extra получает колонки, выбранные после колонок рецепта.
func scanPrescription(row scanner, extra ...any) (prescription.Prescription, string, error) {
	var (
		p                          prescription.Prescription
		meds                       string
		notes, followUp            sql.Null[string]
		by, status                 sql.NullString
		patientName, patientGender sql.Null[string]
		patientAge                 sql.Null[int]
	)
	dest := []any{
		&p.ID, &p.USN, &p.Diagnosis, &meds, &notes, &followUp, &p.PrescribedAt,
		&by, &status, &patientName, &patientAge, &patientGender,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return prescription.Prescription{}, "", err
	}
	p.Medications = prescription.DecodeMedications(meds)
	p.Notes = ptr(notes)
	p.FollowUpDate = ptr(followUp)
	p.PrescribedBy = orDefault(by, prescription.DefaultPrescribedBy)
	p.Status = orDefault(status, prescription.DefaultStatus)
	p.PatientName = ptr(patientName)
	p.PatientAge = ptr(patientAge)
	p.PatientGender = ptr(patientGender)
	return p, meds, nil
}
