package sqlite

import (
	"context"
	"fmt"

	"hmis/internal/domain/casereport"
	"hmis/internal/domain/intimation"
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
)

// Запросы записи общие для CRUD и синхронизации. Обновление идёт через
// ON CONFLICT DO UPDATE: замена строки целиком удалила бы каскадом зависимые записи.

func patientExists(ctx context.Context, q querier, usn string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM patients WHERE usn = ?)`

	var exists bool
	if err := q.QueryRowContext(ctx, query, usn).Scan(&exists); err != nil {
		return false, fmt.Errorf("check patient: %w", err)
	}
	return exists, nil
}

func upsertPatient(ctx context.Context, q querier, p patient.Patient) error {
	const query = `
		INSERT INTO patients (usn, full_name, age, gender, contact, address)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (usn) DO UPDATE SET
			full_name = excluded.full_name,
			age = excluded.age,
			gender = excluded.gender,
			contact = excluded.contact,
			address = excluded.address`

	if _, err := q.ExecContext(ctx, query, p.USN, p.FullName, p.Age, p.Gender, p.Contact, p.Address); err != nil {
		return fmt.Errorf("upsert patient: %w", err)
	}
	return nil
}

func ensurePatient(ctx context.Context, q querier, p patient.Patient) error {
	const query = `
		INSERT INTO patients (usn, full_name, age, gender, contact, address)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (usn) DO NOTHING`

	if _, err := q.ExecContext(ctx, query, p.USN, p.FullName, p.Age, p.Gender, p.Contact, p.Address); err != nil {
		return fmt.Errorf("ensure patient: %w", err)
	}
	return nil
}

func upsertVital(ctx context.Context, q querier, v vital.Vital) (int64, error) {
	const query = `
		INSERT INTO vitals (
			id, usn, weight, height, blood_pressure_systolic, blood_pressure_diastolic,
			heart_rate, temperature, respiratory_rate, oxygen_saturation, notes,
			recorded_at, recorded_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			usn = excluded.usn,
			weight = excluded.weight,
			height = excluded.height,
			blood_pressure_systolic = excluded.blood_pressure_systolic,
			blood_pressure_diastolic = excluded.blood_pressure_diastolic,
			heart_rate = excluded.heart_rate,
			temperature = excluded.temperature,
			respiratory_rate = excluded.respiratory_rate,
			oxygen_saturation = excluded.oxygen_saturation,
			notes = excluded.notes,
			recorded_at = excluded.recorded_at,
			recorded_by = excluded.recorded_by`

	res, err := q.ExecContext(ctx, query,
		idArg(v.ID), v.USN, v.Weight, v.Height, v.Systolic, v.Diastolic,
		v.HeartRate, v.Temperature, arg(v.RespiratoryRate), arg(v.OxygenSaturation), arg(v.Notes),
		v.RecordedAt, v.RecordedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert vital: %w", err)
	}
	if v.ID > 0 {
		return v.ID, nil
	}
	return res.LastInsertId()
}

func upsertPrescription(ctx context.Context, q querier, p prescription.Prescription) (int64, error) {
	const query = `
		INSERT INTO prescriptions (
			id, usn, diagnosis, medications, notes, follow_up_date, prescribed_at,
			prescribed_by, status, patient_name, patient_age, patient_gender)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			usn = excluded.usn,
			diagnosis = excluded.diagnosis,
			medications = excluded.medications,
			notes = excluded.notes,
			follow_up_date = excluded.follow_up_date,
			prescribed_at = excluded.prescribed_at,
			prescribed_by = excluded.prescribed_by,
			status = excluded.status,
			patient_name = excluded.patient_name,
			patient_age = excluded.patient_age,
			patient_gender = excluded.patient_gender`

	meds, err := prescription.EncodeMedications(p.Medications)
	if err != nil {
		return 0, fmt.Errorf("encode medications: %w", err)
	}

	res, err := q.ExecContext(ctx, query,
		idArg(p.ID), p.USN, p.Diagnosis, meds, arg(p.Notes), arg(p.FollowUpDate), p.PrescribedAt,
		p.PrescribedBy, p.Status, arg(p.PatientName), arg(p.PatientAge), arg(p.PatientGender),
	)
	if err != nil {
		return 0, fmt.Errorf("upsert prescription: %w", err)
	}
	if p.ID > 0 {
		return p.ID, nil
	}
	return res.LastInsertId()
}

func upsertCaseReport(ctx context.Context, q querier, r casereport.CaseReport) error {
	const query = `
		INSERT INTO case_reports (
			report_number, usn, patient_name, patient_age, patient_gender, report_type,
			chief_complaint, history_of_present_illness, past_medical_history, family_history,
			social_history, physical_examination, investigations, diagnosis, treatment,
			prognosis, recommendations, follow_up, doctor_name, report_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (report_number) DO UPDATE SET
			usn = excluded.usn,
			patient_name = excluded.patient_name,
			patient_age = excluded.patient_age,
			patient_gender = excluded.patient_gender,
			report_type = excluded.report_type,
			chief_complaint = excluded.chief_complaint,
			history_of_present_illness = excluded.history_of_present_illness,
			past_medical_history = excluded.past_medical_history,
			family_history = excluded.family_history,
			social_history = excluded.social_history,
			physical_examination = excluded.physical_examination,
			investigations = excluded.investigations,
			diagnosis = excluded.diagnosis,
			treatment = excluded.treatment,
			prognosis = excluded.prognosis,
			recommendations = excluded.recommendations,
			follow_up = excluded.follow_up,
			doctor_name = excluded.doctor_name,
			report_date = excluded.report_date,
			status = excluded.status`

	_, err := q.ExecContext(ctx, query,
		r.ReportNumber, r.USN, arg(r.PatientName), arg(r.PatientAge), arg(r.PatientGender), r.ReportType,
		arg(r.ChiefComplaint), arg(r.HistoryOfPresentIllness), arg(r.PastMedicalHistory), arg(r.FamilyHistory),
		arg(r.SocialHistory), arg(r.PhysicalExamination), arg(r.Investigations), arg(r.Diagnosis), arg(r.Treatment),
		arg(r.Prognosis), arg(r.Recommendations), arg(r.FollowUp), arg(r.DoctorName), arg(r.ReportDate),
		r.Status, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert case report: %w", err)
	}
	return nil
}

func upsertSickIntimation(ctx context.Context, q querier, it intimation.Intimation) error {
	const query = `
		INSERT INTO sick_intimations (
			intimation_number, usn, patient_name, patient_age, patient_gender, case_report_id,
			sick_leave_from, sick_leave_to, total_days, reason, symptoms, rest_recommended,
			doctor_name, issue_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (intimation_number) DO UPDATE SET
			usn = excluded.usn,
			patient_name = excluded.patient_name,
			patient_age = excluded.patient_age,
			patient_gender = excluded.patient_gender,
			case_report_id = excluded.case_report_id,
			sick_leave_from = excluded.sick_leave_from,
			sick_leave_to = excluded.sick_leave_to,
			total_days = excluded.total_days,
			reason = excluded.reason,
			symptoms = excluded.symptoms,
			rest_recommended = excluded.rest_recommended,
			doctor_name = excluded.doctor_name,
			issue_date = excluded.issue_date,
			status = excluded.status`

	_, err := q.ExecContext(ctx, query,
		it.IntimationNumber, it.USN, arg(it.PatientName), arg(it.PatientAge), arg(it.PatientGender), arg(it.CaseReportID),
		it.SickLeaveFrom, it.SickLeaveTo, arg(it.TotalDays), it.Reason, arg(it.Symptoms), it.RestRecommended,
		arg(it.DoctorName), arg(it.IssueDate), it.Status, it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert sick intimation: %w", err)
	}
	return nil
}
