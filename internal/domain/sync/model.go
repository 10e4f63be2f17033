package sync

import "fmt"

// Entity - вид записей в пакете синхронизации, совпадает с сегментом пути /api/sync/<entity>.
type Entity string

const (
	EntityPatients        Entity = "patients"
	EntityVitals          Entity = "vitals"
	EntityPrescriptions   Entity = "prescriptions"
	EntityCaseReports     Entity = "case-reports"
	EntitySickIntimations Entity = "sick-intimations"
)

// Entities в порядке зависимостей: пациенты раньше документов, которые на них ссылаются.
var Entities = []Entity{
	EntityPatients,
	EntityVitals,
	EntityPrescriptions,
	EntityCaseReports,
	EntitySickIntimations,
}

func ParseEntity(s string) (Entity, error) {
	for _, e := range Entities {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
}

// Noun - название вида записей для сообщений клиенту.
func (e Entity) Noun() string {
	switch e {
	case EntityCaseReports:
		return "case reports"
	case EntitySickIntimations:
		return "sick intimations"
	}
	return string(e)
}

type Outcome string

const (
	OutcomeSynced  Outcome = "synced"
	OutcomeSkipped Outcome = "skipped"
)

// SkipReason - почему запись не попала в базу.
type SkipReason string

const (
	ReasonMissingKey         SkipReason = "missing_key"
	ReasonMissingName        SkipReason = "missing_name"
	ReasonMissingPatientRef  SkipReason = "missing_patient_ref"
	ReasonMissingMeasurement SkipReason = "missing_measurement"
	ReasonInvalidMeasurement SkipReason = "invalid_measurement"
	ReasonMissingField       SkipReason = "missing_field"
	ReasonMalformed          SkipReason = "malformed"
	ReasonPatientNotFound    SkipReason = "patient_not_found"
	ReasonStoreError         SkipReason = "store_error"
)

// Result - исход одной записи пакета.
type Result struct {
	Index   int
	Key     string
	Outcome Outcome
	Reason  SkipReason
	Err     error
}

// Report - итог пакета. Synced + Skipped всегда равно Received.
type Report struct {
	Entity   Entity
	Received int
	Synced   int
	Skipped  int
	Results  []Result
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	if res.Outcome == OutcomeSynced {
		r.Synced++
		return
	}
	r.Skipped++
}

// Counts - число строк в таблицах, участвующих в синхронизации.
type Counts struct {
	Patients        int `json:"patients"`
	Vitals          int `json:"vitals"`
	Prescriptions   int `json:"prescriptions"`
	CaseReports     int `json:"case_reports"`
	SickIntimations int `json:"sick_intimations"`
}

type Status struct {
	Counts      Counts
	LastUpdated string
}
