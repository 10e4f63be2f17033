package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/intimation"
	"hmis/internal/domain/patient"
)

const intimationColumns = `
	id, intimation_number, usn, patient_name, patient_age, patient_gender, case_report_id,
	sick_leave_from, sick_leave_to, total_days, reason, symptoms, rest_recommended,
	doctor_name, issue_date, status, created_at`

type IntimationRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewIntimationRepository(db *sql.DB, log *slog.Logger) *IntimationRepository {
	return &IntimationRepository{
		db:  db,
		log: log.With("component", "intimation_repository"),
	}
}

func (r *IntimationRepository) List(ctx context.Context, usn string) ([]intimation.Intimation, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if usn != "" {
		const query = `SELECT ` + intimationColumns + ` FROM sick_intimations WHERE usn = ? ORDER BY created_at DESC, id DESC`
		rows, err = r.db.QueryContext(ctx, query, usn)
	} else {
		const query = `SELECT ` + intimationColumns + ` FROM sick_intimations ORDER BY created_at DESC, id DESC`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		r.log.Error("failed to list sick intimations", "usn", usn, "error", err)
		return nil, fmt.Errorf("list sick intimations: %w", err)
	}
	defer rows.Close()

	list := make([]intimation.Intimation, 0)
	for rows.Next() {
		var (
			out                    intimation.Intimation
			name, gender, caseRef  sql.Null[string]
			symptoms, doctor, date sql.Null[string]
			age, days              sql.Null[int]
		)
		if err := rows.Scan(
			&out.ID, &out.IntimationNumber, &out.USN, &name, &age, &gender, &caseRef,
			&out.SickLeaveFrom, &out.SickLeaveTo, &days, &out.Reason, &symptoms, &out.RestRecommended,
			&doctor, &date, &out.Status, &out.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sick intimation: %w", err)
		}
		out.PatientName, out.PatientAge, out.PatientGender = ptr(name), ptr(age), ptr(gender)
		out.CaseReportID = ptr(caseRef)
		out.TotalDays = ptr(days)
		out.Symptoms = ptr(symptoms)
		out.DoctorName = ptr(doctor)
		out.IssueDate = ptr(date)
		list = append(list, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sick intimations: %w", err)
	}
	return list, nil
}

func (r *IntimationRepository) EnsurePatient(ctx context.Context, p patient.Patient) error {
	if err := ensurePatient(ctx, r.db, p); err != nil {
		r.log.Error("failed to ensure patient", "usn", p.USN, "error", err)
		return err
	}
	return nil
}

func (r *IntimationRepository) Upsert(ctx context.Context, it intimation.Intimation) error {
	if err := upsertSickIntimation(ctx, r.db, it); err != nil {
		r.log.Error("failed to save sick intimation", "intimation_number", it.IntimationNumber, "error", err)
		return err
	}
	return nil
}
