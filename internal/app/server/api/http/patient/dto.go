package patient

import "hmis/internal/domain/patient"

// Тела запросов на запись читаются как есть: фронтенд и офлайн-клиент
// присылают числа строками и наоборот, это разбирают типы из flex.
type writeInput struct {
	RawBody []byte
}

type updateInput struct {
	USN     string `path:"usn" doc:"University seat number"`
	RawBody []byte
}

type usnInput struct {
	USN string `path:"usn" doc:"University seat number"`
}

type searchInput struct {
	Q string `query:"q" doc:"USN or contact phone"`
}

type listOutput struct {
	Body []patient.View
}

type patientOutput struct {
	Body patient.View
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	OK      bool `json:"ok"`
	Deleted bool `json:"deleted"`
}

type chartOutput struct {
	Body patient.ChartView
}
