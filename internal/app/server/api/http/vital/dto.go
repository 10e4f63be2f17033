package vital

import "hmis/internal/domain/vital"

type listInput struct {
	USN string `query:"usn" doc:"Filter by patient"`
}

type createInput struct {
	RawBody []byte
}

type listOutput struct {
	Body []vital.View
}

type vitalOutput struct {
	Body vital.View
}
