package intimation

import (
	"hmis/internal/domain/patient"
	"hmis/internal/utils/flex"
)

type Input struct {
	ID                    flex.Int    `json:"id"`
	IntimationNumber      flex.String `json:"intimationNumber"`
	IntimationNumberSnake flex.String `json:"intimation_number"`
	USN                   flex.String `json:"usn"`
	PatientName           flex.String `json:"patientName"`
	PatientAge            flex.Int    `json:"patientAge"`
	PatientGender         flex.String `json:"patientGender"`
	CaseReportID          flex.String `json:"caseReportId"`
	SickLeaveFrom         flex.String `json:"sickLeaveFrom"`
	SickLeaveTo           flex.String `json:"sickLeaveTo"`
	TotalDays             flex.Int    `json:"totalDays"`
	Reason                flex.String `json:"reason"`
	Symptoms              flex.String `json:"symptoms"`
	RestRecommended       flex.Bool   `json:"restRecommended"`
	DoctorName            flex.String `json:"doctorName"`
	IssueDate             flex.String `json:"issueDate"`
	Status                flex.String `json:"status"`
	CreatedAt             flex.String `json:"createdAt"`
}

func (in Input) Number() string {
	return in.IntimationNumber.Or(in.IntimationNumberSnake.Trim())
}

// Normalize проверяет обязательные поля: сначала ключ и USN, затем период и причину.
func (in Input) Normalize(now string) (Intimation, error) {
	it := Intimation{
		IntimationNumber: in.Number(),
		USN:              in.USN.Trim(),
		PatientName:      in.PatientName.Ptr(),
		PatientAge:       in.PatientAge.Ptr(),
		PatientGender:    in.PatientGender.Ptr(),
		CaseReportID:     in.CaseReportID.TrimPtr(),
		SickLeaveFrom:    in.SickLeaveFrom.Trim(),
		SickLeaveTo:      in.SickLeaveTo.Trim(),
		TotalDays:        in.TotalDays.Ptr(),
		Reason:           in.Reason.Trim(),
		Symptoms:         in.Symptoms.Ptr(),
		RestRecommended:  in.RestRecommended.Or(true),
		DoctorName:       in.DoctorName.Ptr(),
		IssueDate:        in.IssueDate.Ptr(),
		Status:           in.Status.Or(DefaultStatus),
		CreatedAt:        in.CreatedAt.Or(now),
	}
	if it.IntimationNumber == "" || it.USN == "" {
		return Intimation{}, ErrRequiredFields
	}
	if it.SickLeaveFrom == "" || it.SickLeaveTo == "" || it.Reason == "" {
		return Intimation{}, ErrMissingFields
	}
	if in.ID.Valid() && in.ID.Value > 0 {
		it.ID = int64(in.ID.Value)
	}
	return it, nil
}

func (in Input) Placeholder() patient.Patient {
	return patient.Placeholder(in.USN.Trim(), in.PatientName, in.PatientAge, in.PatientGender)
}

// View повторяет строку таблицы sick_intimations, rest_recommended - 0 или 1.
type View struct {
	ID               int64   `json:"id"`
	IntimationNumber string  `json:"intimation_number"`
	USN              string  `json:"usn"`
	PatientName      *string `json:"patient_name"`
	PatientAge       *int    `json:"patient_age"`
	PatientGender    *string `json:"patient_gender"`
	CaseReportID     *string `json:"case_report_id"`
	SickLeaveFrom    string  `json:"sick_leave_from"`
	SickLeaveTo      string  `json:"sick_leave_to"`
	TotalDays        *int    `json:"total_days"`
	Reason           string  `json:"reason"`
	Symptoms         *string `json:"symptoms"`
	RestRecommended  int     `json:"rest_recommended"`
	DoctorName       *string `json:"doctor_name"`
	IssueDate        *string `json:"issue_date"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
}

func NewView(it Intimation) View {
	rest := 0
	if it.RestRecommended {
		rest = 1
	}
	return View{
		ID:               it.ID,
		IntimationNumber: it.IntimationNumber,
		USN:              it.USN,
		PatientName:      it.PatientName,
		PatientAge:       it.PatientAge,
		PatientGender:    it.PatientGender,
		CaseReportID:     it.CaseReportID,
		SickLeaveFrom:    it.SickLeaveFrom,
		SickLeaveTo:      it.SickLeaveTo,
		TotalDays:        it.TotalDays,
		Reason:           it.Reason,
		Symptoms:         it.Symptoms,
		RestRecommended:  rest,
		DoctorName:       it.DoctorName,
		IssueDate:        it.IssueDate,
		Status:           it.Status,
		CreatedAt:        it.CreatedAt,
	}
}

func NewViews(list []Intimation) []View {
	out := make([]View, 0, len(list))
	for _, it := range list {
		out = append(out, NewView(it))
	}
	return out
}
