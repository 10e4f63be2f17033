package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
)

var (
	patientsHeader = []string{
		"USN", "Full Name", "Age", "Gender", "Phone", "Address",
		"Emergency Contact", "Emergency Phone", "Email", "Date Registered",
	}
	vitalsHeader = []string{
		"USN", "Patient Name", "Weight (kg)", "Height (cm)", "BMI",
		"Blood Pressure Systolic", "Blood Pressure Diastolic", "Blood Pressure Category",
		"Heart Rate (bpm)", "Temperature (°F)", "Respiratory Rate", "Oxygen Saturation (%)",
		"Notes", "Recorded At", "Recorded By",
	}
	prescriptionsHeader = []string{
		"USN", "Patient Name", "Age", "Gender", "Contact", "Address",
		"Diagnosis", "Medications (Detailed)", "Dosage Instructions",
		"Notes", "Follow Up Date", "Prescribed At", "Prescribed By",
		"Status", "Chief Complaint", "Physical Examination",
	}
	completeHeader = []string{
		"USN", "Full Name", "Age", "Gender", "Phone", "Address", "Email",
		"Emergency Contact Name", "Emergency Contact Phone", "Blood Group", "Allergies",
		"Latest Weight (kg)", "Latest Height (cm)", "Latest BMI", "Latest Blood Pressure",
		"Latest Heart Rate (bpm)", "Latest Temperature (°F)", "Latest SpO2 (%)", "Latest Respiratory Rate",
		"Total Vitals Records", "Total Prescriptions", "Latest Diagnosis", "Latest Prescription Notes",
		"Registration Date", "Last Updated",
	}
	legacyHeader = []string{
		"USN", "Full Name", "Age", "Gender", "Contact", "Address",
		"BP", "Pulse", "Temp", "Weight", "Height", "Vitals Time",
		"Prescription", "Prescribed At",
	}
)

// writeAll пишет заголовок и строки, ошибки csv.Writer оборачиваются с именем выгрузки.
func writeAll(w io.Writer, name string, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%s export csv: write header: %w", name, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%s export csv: write record: %w", name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s export csv: flush: %w", name, err)
	}
	return nil
}

func WritePatients(w io.Writer, patients []patient.Patient) error {
	rows := make([][]string, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []string{
			p.USN, p.FullName, strconv.Itoa(p.Age), p.Gender, p.Contact, p.Address,
			"", "", "", "",
		})
	}
	return writeAll(w, "patients", patientsHeader, rows)
}

func WriteVitals(w io.Writer, vitals []VitalRow) error {
	rows := make([][]string, 0, len(vitals))
	for _, v := range vitals {
		recordedBy := v.RecordedBy
		if recordedBy == "" {
			recordedBy = vital.DefaultRecordedBy
		}
		rows = append(rows, []string{
			v.USN,
			str(v.PatientName),
			num(v.Weight),
			num(v.Height),
			bmi(v.BMI),
			strconv.Itoa(v.Systolic),
			strconv.Itoa(v.Diastolic),
			vital.Category(v.Systolic, v.Diastolic),
			strconv.Itoa(v.HeartRate),
			num(v.Temperature),
			integer(v.RespiratoryRate),
			integer(v.OxygenSaturation),
			str(v.Notes),
			v.RecordedAt,
			recordedBy,
		})
	}
	return writeAll(w, "vitals", vitalsHeader, rows)
}

func WritePrescriptions(w io.Writer, list []PrescriptionRow) error {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		meds, dosage := MedicationColumns(p.RawMedications)

		name := str(p.PatientName)
		if name == "" {
			name = str(p.FullName)
		}
		prescribedBy := p.PrescribedBy
		if prescribedBy == "" {
			prescribedBy = prescription.DefaultPrescribedBy
		}
		status := p.Status
		if status == "" {
			status = prescription.DefaultStatus
		}

		rows = append(rows, []string{
			p.USN,
			name,
			integer(p.PatientAge),
			str(p.PatientGender),
			str(p.Contact),
			str(p.Address),
			p.Diagnosis,
			meds,
			dosage,
			str(p.Notes),
			str(p.FollowUpDate),
			p.PrescribedAt,
			prescribedBy,
			status,
			"",
			"",
		})
	}
	return writeAll(w, "prescriptions", prescriptionsHeader, rows)
}

// MedicationColumns возвращает названия препаратов через "; " и строки дозировки
// вида "name: dosage frequency for duration". Неразбираемое значение выводится как есть.
func MedicationColumns(raw string) (string, string) {
	if strings.TrimSpace(raw) == "{}" {
		return "", ""
	}
	meds, err := prescription.ParseMedications(raw)
	if err != nil {
		return raw, ""
	}

	names := make([]string, 0, len(meds))
	dosage := make([]string, 0, len(meds))
	for _, m := range meds {
		name := m.Name
		if name == "" {
			name = patient.UnknownName
		}
		names = append(names, name)
		dosage = append(dosage, fmt.Sprintf("%s: %s %s for %s", name, m.Dosage, m.Frequency, m.Duration))
	}
	return strings.Join(names, "; "), strings.Join(dosage, "; ")
}

func WriteComplete(w io.Writer, list []Summary) error {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		row := []string{
			s.USN, s.FullName, strconv.Itoa(s.Age), s.Gender, s.Contact, s.Address,
			"", "", "", "", "",
		}
		if v := s.Latest; v != nil {
			row = append(row,
				num(v.Weight),
				num(v.Height),
				bmi(v.BMI),
				fmt.Sprintf("%d/%d", v.Systolic, v.Diastolic),
				strconv.Itoa(v.HeartRate),
				num(v.Temperature),
				integer(v.OxygenSaturation),
				integer(v.RespiratoryRate),
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "")
		}
		row = append(row,
			strconv.Itoa(s.TotalVitals),
			strconv.Itoa(s.TotalPrescriptions),
			str(s.LatestDiagnosis),
			str(s.LatestNotes),
			"",
			"",
		)
		rows = append(rows, row)
	}
	return writeAll(w, "complete", completeHeader, rows)
}

// WriteLegacy пишет строку на каждый рецепт пациента, а пациента без рецептов - одной строкой.
func WriteLegacy(w io.Writer, data Legacy) error {
	byPatient := make(map[string][]prescription.Prescription)
	for _, rx := range data.Prescriptions {
		byPatient[rx.USN] = append(byPatient[rx.USN], rx)
	}

	var rows [][]string
	for _, p := range data.Patients {
		base := []string{p.USN, p.FullName, strconv.Itoa(p.Age), p.Gender, p.Contact, p.Address}
		if v, ok := data.LatestVitals[p.USN]; ok {
			base = append(base,
				fmt.Sprintf("%d/%d", v.Systolic, v.Diastolic),
				strconv.Itoa(v.HeartRate),
				num(v.Temperature),
				num(v.Weight),
				num(v.Height),
				v.RecordedAt,
			)
		} else {
			base = append(base, "", "", "", "", "", "")
		}

		related := byPatient[p.USN]
		if len(related) == 0 {
			rows = append(rows, append(base, "", ""))
			continue
		}
		for _, rx := range related {
			row := append([]string(nil), base...)
			notes := strings.ReplaceAll(str(rx.Notes), "\n", " ")
			rows = append(rows, append(row, notes, rx.PrescribedAt))
		}
	}
	return writeAll(w, "legacy", legacyHeader, rows)
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func integer(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// bmi округляет до одного знака, нулевой или отсутствующий BMI - пустая ячейка.
func bmi(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.FormatFloat(math.Round(*v*10)/10, 'f', 1, 64)
}
