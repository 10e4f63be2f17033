package lab

import "hmis/internal/domain/lab"

type listOrdersInput struct {
	USN string `query:"usn" doc:"Filter by patient"`
}

type createOrderInput struct {
	RawBody []byte
}

type resultInput struct {
	ItemID  int64 `path:"item_id" doc:"Lab order item id"`
	RawBody []byte
}

type testsOutput struct {
	Body []lab.TestView
}

type ordersOutput struct {
	Body []lab.OrderLineView
}

type createOrderOutput struct {
	Body struct {
		ID int64 `json:"id"`
	}
}

type resultOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}
