package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
)

func readCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	return records
}

func ptr[T any](v T) *T {
	return &v
}

func TestWritePatients(t *testing.T) {
	var buf bytes.Buffer

	err := WritePatients(&buf, []patient.Patient{
		{USN: "A1", FullName: "Doe, Jane", Age: 34, Gender: "F", Contact: "98450", Address: "Hostel \"B\""},
	})

	require.NoError(t, err)
	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, patientsHeader, records[0])
	assert.Equal(t, []string{"A1", "Doe, Jane", "34", "F", "98450", "Hostel \"B\"", "", "", "", ""}, records[1])
}

func TestWriteVitals(t *testing.T) {
	var buf bytes.Buffer

	err := WriteVitals(&buf, []VitalRow{
		{
			Vital: vital.Vital{
				USN: "A1", Weight: 64, Height: 160, BMI: ptr(25.0),
				Systolic: 142, Diastolic: 85, HeartRate: 72, Temperature: 98.6,
				OxygenSaturation: ptr(97), RecordedAt: "2024-01-01T10:00:00.000000Z",
			},
			PatientName: ptr("Jane Doe"),
		},
		{Vital: vital.Vital{USN: "B2", Systolic: 100, Diastolic: 70}},
	})

	require.NoError(t, err)
	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"A1", "Jane Doe", "64", "160", "25.0", "142", "85", "High", "72", "98.6", "", "97", "",
		"2024-01-01T10:00:00.000000Z", vital.DefaultRecordedBy,
	}, records[1])
	assert.Equal(t, "", records[2][1])
	assert.Equal(t, "", records[2][4])
	assert.Equal(t, "Normal", records[2][7])
}

func TestMedicationColumns(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantNames  string
		wantDosage string
	}{
		{
			name:       "two medications",
			raw:        `[{"name":"Paracetamol","dosage":"500mg","frequency":"TID","duration":"3 days"},{"name":"ORS"}]`,
			wantNames:  "Paracetamol; ORS",
			wantDosage: "Paracetamol: 500mg TID for 3 days; ORS:   for ",
		},
		{name: "empty object", raw: "{}", wantNames: "", wantDosage: ""},
		{name: "empty", raw: "", wantNames: "", wantDosage: ""},
		{name: "not json", raw: "Paracetamol 500", wantNames: "Paracetamol 500", wantDosage: ""},
		{name: "nameless medication", raw: `[{"dosage":"5ml"}]`, wantNames: "Unknown", wantDosage: "Unknown: 5ml  for "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, dosage := MedicationColumns(tt.raw)

			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantDosage, dosage)
		})
	}
}

func TestWritePrescriptions_NameFallback(t *testing.T) {
	var buf bytes.Buffer

	err := WritePrescriptions(&buf, []PrescriptionRow{
		{
			Prescription:   prescription.Prescription{USN: "A1", Diagnosis: "Fever", PrescribedAt: "t1"},
			RawMedications: `[{"name":"Zinc"}]`,
			FullName:       ptr("Jane Doe"),
			Contact:        ptr("98450"),
		},
		{
			Prescription: prescription.Prescription{USN: "B2", PatientName: ptr("Ravi"), PrescribedBy: "Dr. K", Status: "Closed"},
			FullName:     ptr("Ravi Kumar"),
		},
	})

	require.NoError(t, err)
	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, "Jane Doe", records[1][1])
	assert.Equal(t, "98450", records[1][4])
	assert.Equal(t, "Zinc", records[1][7])
	assert.Equal(t, prescription.DefaultPrescribedBy, records[1][12])
	assert.Equal(t, prescription.DefaultStatus, records[1][13])
	assert.Equal(t, "Ravi", records[2][1])
	assert.Equal(t, "Dr. K", records[2][12])
}

func TestWriteComplete(t *testing.T) {
	var buf bytes.Buffer

	err := WriteComplete(&buf, []Summary{
		{
			Patient:            patient.Patient{USN: "A1", FullName: "Jane Doe", Age: 34, Gender: "F"},
			Latest:             &vital.Vital{Weight: 60, Height: 150, BMI: ptr(26.666), Systolic: 120, Diastolic: 80, HeartRate: 70, Temperature: 98.4},
			TotalVitals:        2,
			TotalPrescriptions: 1,
			LatestDiagnosis:    ptr("Cold"),
		},
		{Patient: patient.Patient{USN: "B2", FullName: "No Vitals"}},
	})

	require.NoError(t, err)
	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	require.Len(t, records[1], len(completeHeader))
	assert.Equal(t, "26.7", records[1][13])
	assert.Equal(t, "120/80", records[1][14])
	assert.Equal(t, "2", records[1][19])
	assert.Equal(t, "Cold", records[1][21])
	assert.Equal(t, "", records[2][14])
	assert.Equal(t, "0", records[2][19])
}

func TestWriteLegacy(t *testing.T) {
	var buf bytes.Buffer

	err := WriteLegacy(&buf, Legacy{
		Patients: []patient.Patient{
			{USN: "A1", FullName: "Jane Doe", Age: 34},
			{USN: "B2", FullName: "Ravi"},
		},
		LatestVitals: map[string]vital.Vital{
			"A1": {Systolic: 118, Diastolic: 76, HeartRate: 80, Temperature: 98.6, Weight: 60, Height: 150, RecordedAt: "t0"},
		},
		Prescriptions: []prescription.Prescription{
			{USN: "A1", Notes: ptr("line one\nline two"), PrescribedAt: "t1"},
			{USN: "A1", PrescribedAt: "t2"},
		},
	})

	require.NoError(t, err)
	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 4)
	assert.Equal(t, legacyHeader, records[0])
	assert.Equal(t, []string{"A1", "Jane Doe", "34", "", "", "", "118/76", "80", "98.6", "60", "150", "t0", "line one line two", "t1"}, records[1])
	assert.Equal(t, "t2", records[2][13])
	assert.Equal(t, []string{"B2", "Ravi", "0", "", "", "", "", "", "", "", "", "", "", ""}, records[3])
}
