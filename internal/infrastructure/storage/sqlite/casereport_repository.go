package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/casereport"
	"hmis/internal/domain/patient"
)

const caseReportColumns = `
	id, report_number, usn, patient_name, patient_age, patient_gender, report_type,
	chief_complaint, history_of_present_illness, past_medical_history, family_history,
	social_history, physical_examination, investigations, diagnosis, treatment,
	prognosis, recommendations, follow_up, doctor_name, report_date, status, created_at`

type CaseReportRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewCaseReportRepository(db *sql.DB, log *slog.Logger) *CaseReportRepository {
	return &CaseReportRepository{
		db:  db,
		log: log.With("component", "case_report_repository"),
	}
}

func (r *CaseReportRepository) List(ctx context.Context, usn string) ([]casereport.CaseReport, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if usn != "" {
		const query = `SELECT ` + caseReportColumns + ` FROM case_reports WHERE usn = ? ORDER BY created_at DESC, id DESC`
		rows, err = r.db.QueryContext(ctx, query, usn)
	} else {
		const query = `SELECT ` + caseReportColumns + ` FROM case_reports ORDER BY created_at DESC, id DESC`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		r.log.Error("failed to list case reports", "usn", usn, "error", err)
		return nil, fmt.Errorf("list case reports: %w", err)
	}
	defer rows.Close()

	list := make([]casereport.CaseReport, 0)
	for rows.Next() {
		var (
			c                            casereport.CaseReport
			name, gender                 sql.Null[string]
			age                          sql.Null[int]
			complaint, hpi, past, family sql.Null[string]
			social, exam, inv, diagnosis sql.Null[string]
			treatment, prognosis, recs   sql.Null[string]
			followUp, doctor, date       sql.Null[string]
		)
		if err := rows.Scan(
			&c.ID, &c.ReportNumber, &c.USN, &name, &age, &gender, &c.ReportType,
			&complaint, &hpi, &past, &family,
			&social, &exam, &inv, &diagnosis, &treatment,
			&prognosis, &recs, &followUp, &doctor, &date, &c.Status, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan case report: %w", err)
		}
		c.PatientName, c.PatientAge, c.PatientGender = ptr(name), ptr(age), ptr(gender)
		c.ChiefComplaint = ptr(complaint)
		c.HistoryOfPresentIllness = ptr(hpi)
		c.PastMedicalHistory = ptr(past)
		c.FamilyHistory = ptr(family)
		c.SocialHistory = ptr(social)
		c.PhysicalExamination = ptr(exam)
		c.Investigations = ptr(inv)
		c.Diagnosis = ptr(diagnosis)
		c.Treatment = ptr(treatment)
		c.Prognosis = ptr(prognosis)
		c.Recommendations = ptr(recs)
		c.FollowUp = ptr(followUp)
		c.DoctorName = ptr(doctor)
		c.ReportDate = ptr(date)
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case reports: %w", err)
	}
	return list, nil
}

func (r *CaseReportRepository) EnsurePatient(ctx context.Context, p patient.Patient) error {
	if err := ensurePatient(ctx, r.db, p); err != nil {
		r.log.Error("failed to ensure patient", "usn", p.USN, "error", err)
		return err
	}
	return nil
}

func (r *CaseReportRepository) Upsert(ctx context.Context, c casereport.CaseReport) error {
	if err := upsertCaseReport(ctx, r.db, c); err != nil {
		r.log.Error("failed to save case report", "report_number", c.ReportNumber, "error", err)
		return err
	}
	return nil
}
