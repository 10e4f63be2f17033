package appointment

import "hmis/internal/domain/appointment"

type listInput struct {
	USN string `query:"usn" doc:"Filter by patient"`
}

type createInput struct {
	RawBody []byte
}

type idInput struct {
	ID int64 `path:"id"`
}

type updateInput struct {
	ID      int64 `path:"id"`
	RawBody []byte
}

type listOutput struct {
	Body []appointment.View
}

type createOutput struct {
	Body struct {
		ID int64 `json:"id"`
	}
}

type okOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func newOK() *okOutput {
	out := &okOutput{}
	out.Body.OK = true
	return out
}
