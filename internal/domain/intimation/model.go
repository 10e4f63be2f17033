package intimation

const DefaultStatus = "Active"

// Intimation - извещение о болезни (освобождение от занятий). IntimationNumber - естественный ключ.
type Intimation struct {
	ID               int64
	IntimationNumber string
	USN              string
	PatientName      *string
	PatientAge       *int
	PatientGender    *string
	// CaseReportID хранит номер истории болезни, а не её id.
	CaseReportID     *string
	SickLeaveFrom    string
	SickLeaveTo      string
	TotalDays        *int
	Reason           string
	Symptoms         *string
	RestRecommended  bool
	DoctorName       *string
	IssueDate        *string
	Status           string
	CreatedAt        string
}
