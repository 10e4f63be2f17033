package intimation

import "hmis/internal/domain/intimation"

type listInput struct {
	USN string `query:"usn" doc:"Filter by patient"`
}

type createInput struct {
	RawBody []byte
}

type listOutput struct {
	Body []intimation.View
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	OK               bool   `json:"ok"`
	IntimationNumber string `json:"intimationNumber"`
}
