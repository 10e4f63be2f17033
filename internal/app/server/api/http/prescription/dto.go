package prescription

import "hmis/internal/domain/prescription"

type listInput struct {
	USN string `query:"usn" doc:"Filter by patient"`
}

type createInput struct {
	RawBody []byte
}

type idInput struct {
	ID int64 `path:"id" doc:"Prescription id"`
}

type addItemInput struct {
	ID      int64 `path:"id" doc:"Prescription id"`
	RawBody []byte
}

type listOutput struct {
	Body []prescription.View
}

type prescriptionOutput struct {
	Body prescription.View
}

type itemOutput struct {
	Body prescription.ItemView
}

type sheetOutput struct {
	Body prescription.SheetView
}
