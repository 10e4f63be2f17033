package metrics

// Dashboard - показатели для главной страницы.
type Dashboard struct {
	Patients          int `json:"patients"`
	AppointmentsToday int `json:"appointments_today"`
	LabsPending       int `json:"labs_pending"`
	VitalsToday       int `json:"vitals_today"`
}
