package prescription

const (
	DefaultPrescribedBy = "NHCE Clinic"
	DefaultStatus       = "Active"
)

// Medication - строка списка препаратов внутри рецепта.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type Prescription struct {
	ID            int64
	USN           string
	Diagnosis     string
	Medications   []Medication
	Notes         *string
	FollowUpDate  *string
	PrescribedAt  string
	PrescribedBy  string
	Status        string
	PatientName   *string
	PatientAge    *int
	PatientGender *string
}

// Item - детализированная позиция рецепта со ссылкой на справочник препаратов.
type Item struct {
	ID             int64
	PrescriptionID int64
	MedicationID   int64
	MedicationName string
	Dose           *string
	Route          *string
	Frequency      *string
	DurationDays   *int
	Instructions   *string
}

// PatientInfo - данные пациента, подставляемые в рецепт.
type PatientInfo struct {
	USN      string
	FullName string
	Age      int
	Gender   string
	Contact  string
	Address  string
}

// Sheet - рецепт для печати: сам рецепт, пациент и позиции.
type Sheet struct {
	Prescription Prescription
	Patient      *PatientInfo
	Items        []Item
}
