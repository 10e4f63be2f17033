package lab

import "hmis/internal/utils/flex"

type OrderInput struct {
	USN      flex.String `json:"usn"`
	TestCode flex.String `json:"test_code"`
	Notes    flex.String `json:"notes"`
}

type ResultInput struct {
	ResultValue flex.String `json:"result_value"`
	ResultNotes flex.String `json:"result_notes"`
}

type TestView struct {
	ID       int64   `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Specimen *string `json:"specimen"`
	Unit     *string `json:"unit"`
	RefRange *string `json:"ref_range"`
	IsActive int     `json:"is_active"`
}

func NewTestViews(tests []Test) []TestView {
	out := make([]TestView, 0, len(tests))
	for _, t := range tests {
		active := 0
		if t.IsActive {
			active = 1
		}
		out = append(out, TestView{
			ID:       t.ID,
			Code:     t.Code,
			Name:     t.Name,
			Specimen: t.Specimen,
			Unit:     t.Unit,
			RefRange: t.RefRange,
			IsActive: active,
		})
	}
	return out
}

// OrderLineView - строка выборки заказов. status - статус позиции.
type OrderLineView struct {
	ID          int64   `json:"id"`
	USN         string  `json:"usn"`
	OrderedAt   string  `json:"ordered_at"`
	Notes       *string `json:"notes"`
	ItemID      int64   `json:"item_id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	OrderStatus string  `json:"order_status"`
	ResultValue *string `json:"result_value"`
	ResultAt    *string `json:"result_at"`
}

func NewOrderLineViews(lines []OrderLine) []OrderLineView {
	out := make([]OrderLineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, OrderLineView{
			ID:          l.ID,
			USN:         l.USN,
			OrderedAt:   l.OrderedAt,
			Notes:       l.Notes,
			ItemID:      l.ItemID,
			Code:        l.Code,
			Name:        l.Name,
			Status:      l.ItemStatus,
			OrderStatus: l.Status,
			ResultValue: l.ResultValue,
			ResultAt:    l.ResultAt,
		})
	}
	return out
}
