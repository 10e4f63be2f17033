package casereport

import (
	"hmis/internal/domain/patient"
	"hmis/internal/utils/flex"
)

// Input - история болезни от фронтенда. Номер принимается и в snake_case.
type Input struct {
	ID                      flex.Int    `json:"id"`
	ReportNumber            flex.String `json:"reportNumber"`
	ReportNumberSnake       flex.String `json:"report_number"`
	USN                     flex.String `json:"usn"`
	PatientName             flex.String `json:"patientName"`
	PatientAge              flex.Int    `json:"patientAge"`
	PatientGender           flex.String `json:"patientGender"`
	ReportType              flex.String `json:"reportType"`
	ChiefComplaint          flex.String `json:"chiefComplaint"`
	HistoryOfPresentIllness flex.String `json:"historyOfPresentIllness"`
	PastMedicalHistory      flex.String `json:"pastMedicalHistory"`
	FamilyHistory           flex.String `json:"familyHistory"`
	SocialHistory           flex.String `json:"socialHistory"`
	PhysicalExamination     flex.String `json:"physicalExamination"`
	Investigations          flex.String `json:"investigations"`
	Diagnosis               flex.String `json:"diagnosis"`
	Treatment               flex.String `json:"treatment"`
	Prognosis               flex.String `json:"prognosis"`
	Recommendations         flex.String `json:"recommendations"`
	FollowUp                flex.String `json:"followUp"`
	DoctorName              flex.String `json:"doctorName"`
	ReportDate              flex.String `json:"reportDate"`
	Status                  flex.String `json:"status"`
	CreatedAt               flex.String `json:"createdAt"`
}

// Number возвращает номер из reportNumber, а если он пуст, из report_number.
func (in Input) Number() string {
	return in.ReportNumber.Or(in.ReportNumberSnake.Trim())
}

// Normalize проверяет номер и USN и подставляет значения по умолчанию.
func (in Input) Normalize(now string) (CaseReport, error) {
	r := CaseReport{
		ReportNumber:            in.Number(),
		USN:                     in.USN.Trim(),
		PatientName:             in.PatientName.Ptr(),
		PatientAge:              in.PatientAge.Ptr(),
		PatientGender:           in.PatientGender.Ptr(),
		ReportType:              in.ReportType.Or(DefaultReportType),
		ChiefComplaint:          in.ChiefComplaint.Ptr(),
		HistoryOfPresentIllness: in.HistoryOfPresentIllness.Ptr(),
		PastMedicalHistory:      in.PastMedicalHistory.Ptr(),
		FamilyHistory:           in.FamilyHistory.Ptr(),
		SocialHistory:           in.SocialHistory.Ptr(),
		PhysicalExamination:     in.PhysicalExamination.Ptr(),
		Investigations:          in.Investigations.Ptr(),
		Diagnosis:               in.Diagnosis.Ptr(),
		Treatment:               in.Treatment.Ptr(),
		Prognosis:               in.Prognosis.Ptr(),
		Recommendations:         in.Recommendations.Ptr(),
		FollowUp:                in.FollowUp.Ptr(),
		DoctorName:              in.DoctorName.Ptr(),
		ReportDate:              in.ReportDate.Ptr(),
		Status:                  in.Status.Or(DefaultStatus),
		CreatedAt:               in.CreatedAt.Or(now),
	}
	if r.ReportNumber == "" || r.USN == "" {
		return CaseReport{}, ErrRequiredFields
	}
	if in.ID.Valid() && in.ID.Value > 0 {
		r.ID = int64(in.ID.Value)
	}
	return r, nil
}

// Placeholder - карточка пациента, которую нужно завести, если её ещё нет.
func (in Input) Placeholder() patient.Patient {
	return patient.Placeholder(in.USN.Trim(), in.PatientName, in.PatientAge, in.PatientGender)
}

// View повторяет строку таблицы case_reports.
type View struct {
	ID                      int64   `json:"id"`
	ReportNumber            string  `json:"report_number"`
	USN                     string  `json:"usn"`
	PatientName             *string `json:"patient_name"`
	PatientAge              *int    `json:"patient_age"`
	PatientGender           *string `json:"patient_gender"`
	ReportType              string  `json:"report_type"`
	ChiefComplaint          *string `json:"chief_complaint"`
	HistoryOfPresentIllness *string `json:"history_of_present_illness"`
	PastMedicalHistory      *string `json:"past_medical_history"`
	FamilyHistory           *string `json:"family_history"`
	SocialHistory           *string `json:"social_history"`
	PhysicalExamination     *string `json:"physical_examination"`
	Investigations          *string `json:"investigations"`
	Diagnosis               *string `json:"diagnosis"`
	Treatment               *string `json:"treatment"`
	Prognosis               *string `json:"prognosis"`
	Recommendations         *string `json:"recommendations"`
	FollowUp                *string `json:"follow_up"`
	DoctorName              *string `json:"doctor_name"`
	ReportDate              *string `json:"report_date"`
	Status                  string  `json:"status"`
	CreatedAt               string  `json:"created_at"`
}

func NewView(r CaseReport) View {
	return View(r)
}

func NewViews(rs []CaseReport) []View {
	out := make([]View, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewView(r))
	}
	return out
}
