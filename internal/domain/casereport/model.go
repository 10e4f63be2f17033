package casereport

const (
	DefaultReportType = "medical"
	DefaultStatus     = "Active"
)

// CaseReport - история болезни. ReportNumber - естественный ключ.
type CaseReport struct {
	ID                      int64
	ReportNumber            string
	USN                     string
	PatientName             *string
	PatientAge              *int
	PatientGender           *string
	ReportType              string
	ChiefComplaint          *string
	HistoryOfPresentIllness *string
	PastMedicalHistory      *string
	FamilyHistory           *string
	SocialHistory           *string
	PhysicalExamination     *string
	Investigations          *string
	Diagnosis               *string
	Treatment               *string
	Prognosis               *string
	Recommendations         *string
	FollowUp                *string
	DoctorName              *string
	ReportDate              *string
	Status                  string
	CreatedAt               string
}
