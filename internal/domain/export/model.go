package export

import (
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
)

// Kind - вид выгрузки.
type Kind string

const (
	KindPatients      Kind = "patients"
	KindVitals        Kind = "vitals"
	KindPrescriptions Kind = "prescriptions"
	KindComplete      Kind = "complete"
	KindLegacy        Kind = "legacy"
)

// Kinds перечисляет выгрузки, доступные через API и клиент.
var Kinds = []Kind{KindPatients, KindVitals, KindPrescriptions, KindComplete, KindLegacy}

// File - готовый CSV-файл.
type File struct {
	Name string
	Body []byte
}

// VitalRow - замер с именем пациента из карточки.
type VitalRow struct {
	vital.Vital
	PatientName *string
}

// PrescriptionRow - рецепт с исходным текстом колонки medications и данными карточки.
type PrescriptionRow struct {
	prescription.Prescription
	RawMedications string
	FullName       *string
	Contact        *string
	Address        *string
}

// Summary - сводка по пациенту для полной выгрузки.
type Summary struct {
	patient.Patient
	Latest             *vital.Vital
	TotalVitals        int
	TotalPrescriptions int
	LatestDiagnosis    *string
	LatestNotes        *string
}

// Legacy - данные для плоской выгрузки /export.csv.
type Legacy struct {
	Patients      []patient.Patient
	LatestVitals  map[string]vital.Vital
	Prescriptions []prescription.Prescription
}
