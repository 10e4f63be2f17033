package prescription

import (
	"bytes"
	"encoding/json"
	"strings"

	"hmis/internal/utils/flex"
)

// MedicationInput принимает объект препарата или просто строку с названием.
type MedicationInput struct {
	Name      flex.String `json:"name"`
	Dosage    flex.String `json:"dosage"`
	Frequency flex.String `json:"frequency"`
	Duration  flex.String `json:"duration"`
}

func (m *MedicationInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		*m = MedicationInput{}
		return m.Name.UnmarshalJSON(b)
	}
	type plain MedicationInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*m = MedicationInput(p)
	return nil
}

// MedicationList принимает массив, null или строку с JSON-массивом внутри
// (так присылают старые версии офлайн-клиента).
type MedicationList []MedicationInput

func (l *MedicationList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*l = nil
		return nil
	case b[0] == '"':
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return err
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			*l = nil
			return nil
		}
		b = []byte(inner)
	}
	if len(b) == 0 || b[0] != '[' {
		return ErrBadMedications
	}
	var items []MedicationInput
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Medications возвращает список без изменений значений полей.
func (l MedicationList) Medications() []Medication {
	out := make([]Medication, 0, len(l))
	for _, m := range l {
		out = append(out, Medication{
			Name:      m.Name.Value,
			Dosage:    m.Dosage.Value,
			Frequency: m.Frequency.Value,
			Duration:  m.Duration.Value,
		})
	}
	return out
}

// Input - рецепт от фронтенда или офлайн-клиента.
type Input struct {
	ID            flex.Int       `json:"id"`
	USN           flex.String    `json:"usn"`
	Diagnosis     flex.String    `json:"diagnosis"`
	Medications   MedicationList `json:"medications"`
	Notes         flex.String    `json:"notes"`
	FollowUpDate  flex.String    `json:"followUpDate"`
	PrescribedAt  flex.String    `json:"prescribedAt"`
	PrescribedBy  flex.String    `json:"prescribedBy"`
	Status        flex.String    `json:"status"`
	PatientName   flex.String    `json:"patientName"`
	PatientAge    flex.Int       `json:"patientAge"`
	PatientGender flex.String    `json:"patientGender"`
}

// Normalize подставляет значения по умолчанию. Обязательность полей проверяет вызывающий.
func (in Input) Normalize(now string) Prescription {
	notes := in.Notes.Trim()
	p := Prescription{
		USN:           in.USN.Trim(),
		Diagnosis:     in.Diagnosis.Trim(),
		Medications:   in.Medications.Medications(),
		Notes:         &notes,
		FollowUpDate:  in.FollowUpDate.TrimPtr(),
		PrescribedAt:  in.PrescribedAt.Or(now),
		PrescribedBy:  in.PrescribedBy.Or(DefaultPrescribedBy),
		Status:        in.Status.Or(DefaultStatus),
		PatientName:   in.PatientName.TrimPtr(),
		PatientAge:    in.PatientAge.Ptr(),
		PatientGender: in.PatientGender.TrimPtr(),
	}
	if in.ID.Valid() && in.ID.Value > 0 {
		p.ID = int64(in.ID.Value)
	}
	return p
}

// View - рецепт в формате фронтенда.
type View struct {
	ID            int64        `json:"id"`
	USN           string       `json:"usn"`
	Diagnosis     string       `json:"diagnosis"`
	Medications   []Medication `json:"medications"`
	Notes         string       `json:"notes"`
	FollowUpDate  string       `json:"followUpDate"`
	PrescribedAt  string       `json:"prescribedAt"`
	PrescribedBy  string       `json:"prescribedBy"`
	Status        string       `json:"status"`
	PatientName   string       `json:"patientName"`
	PatientAge    *int         `json:"patientAge"`
	PatientGender string       `json:"patientGender"`
}

func NewView(p Prescription) View {
	meds := p.Medications
	if meds == nil {
		meds = []Medication{}
	}
	return View{
		ID:            p.ID,
		USN:           p.USN,
		Diagnosis:     p.Diagnosis,
		Medications:   meds,
		Notes:         deref(p.Notes),
		FollowUpDate:  deref(p.FollowUpDate),
		PrescribedAt:  p.PrescribedAt,
		PrescribedBy:  p.PrescribedBy,
		Status:        p.Status,
		PatientName:   deref(p.PatientName),
		PatientAge:    p.PatientAge,
		PatientGender: deref(p.PatientGender),
	}
}

func NewViews(ps []Prescription) []View {
	out := make([]View, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewView(p))
	}
	return out
}

// ItemInput - позиция рецепта с названием препарата.
type ItemInput struct {
	MedName      flex.String `json:"medName"`
	Dose         flex.String `json:"dose"`
	Route        flex.String `json:"route"`
	Frequency    flex.String `json:"frequency"`
	DurationDays flex.Int    `json:"durationDays"`
	Instructions flex.String `json:"instructions"`
}

type ItemView struct {
	ID             int64   `json:"id"`
	PrescriptionID int64   `json:"prescriptionId"`
	MedicationID   int64   `json:"medicationId"`
	MedicationName string  `json:"medicationName"`
	Dose           *string `json:"dose"`
	Route          *string `json:"route"`
	Frequency      *string `json:"frequency"`
	DurationDays   *int    `json:"durationDays"`
	Instructions   *string `json:"instructions"`
}

func NewItemView(it Item) ItemView {
	return ItemView{
		ID:             it.ID,
		PrescriptionID: it.PrescriptionID,
		MedicationID:   it.MedicationID,
		MedicationName: it.MedicationName,
		Dose:           it.Dose,
		Route:          it.Route,
		Frequency:      it.Frequency,
		DurationDays:   it.DurationDays,
		Instructions:   it.Instructions,
	}
}

type PatientView struct {
	USN      string `json:"usn"`
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
}

// SheetView - данные для печатной формы рецепта.
type SheetView struct {
	Prescription View         `json:"prescription"`
	Patient      *PatientView `json:"patient"`
	Items        []ItemView   `json:"items"`
}

func NewSheetView(s Sheet) SheetView {
	out := SheetView{
		Prescription: NewView(s.Prescription),
		Items:        make([]ItemView, 0, len(s.Items)),
	}
	if s.Patient != nil {
		out.Patient = &PatientView{
			USN:      s.Patient.USN,
			FullName: s.Patient.FullName,
			Age:      s.Patient.Age,
			Gender:   s.Patient.Gender,
			Contact:  s.Patient.Contact,
			Address:  s.Patient.Address,
		}
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, NewItemView(it))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
