package appointment

const StatusScheduled = "Scheduled"

// ListLimit ограничивает выдачу без фильтра по пациенту.
const ListLimit = 200

type Appointment struct {
	ID        int64
	USN       string
	StartsAt  string
	EndsAt    string
	Status    string
	Title     *string
	Clinician *string
	Notes     *string
}

// Patch - частичное изменение записи на приём. nil-поля не меняются.
type Patch struct {
	Status    *string
	Title     *string
	Clinician *string
	Notes     *string
	StartsAt  *string
	EndsAt    *string
}
