package casereport

import "hmis/internal/domain/casereport"

type listInput struct {
	USN string `query:"usn" doc:"Filter by patient"`
}

type createInput struct {
	RawBody []byte
}

type listOutput struct {
	Body []casereport.View
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	OK           bool   `json:"ok"`
	ReportNumber string `json:"reportNumber"`
}
