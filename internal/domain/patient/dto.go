package patient

import (
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
	"hmis/internal/utils/flex"
)

// Input - карточка пациента от фронтенда или офлайн-клиента.
type Input struct {
	USN      flex.String `json:"usn"`
	FullName flex.String `json:"fullName"`
	Age      flex.Int    `json:"age"`
	Gender   flex.String `json:"gender"`
	Contact  flex.String `json:"contact"`
	Phone    flex.String `json:"phone"`
	Address  flex.String `json:"address"`
}

// ContactOrPhone - phone считается синонимом contact.
func (in Input) ContactOrPhone() string {
	return in.Contact.Or(in.Phone.Trim())
}

// View - пациент в формате фронтенда.
type View struct {
	ID       int64  `json:"id"`
	USN      string `json:"usn"`
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Contact  string `json:"contact"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func NewView(p Patient) View {
	return View{
		ID:       SurrogateID(p.USN),
		USN:      p.USN,
		FullName: p.FullName,
		Age:      p.Age,
		Gender:   p.Gender,
		Contact:  p.Contact,
		Phone:    p.Contact,
		Address:  p.Address,
	}
}

func NewViews(ps []Patient) []View {
	out := make([]View, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewView(p))
	}
	return out
}

// Chart - пациент вместе с замерами и рецептами, новые первыми.
type Chart struct {
	Patient       Patient
	Vitals        []vital.Vital
	Prescriptions []prescription.Prescription
}

type ChartView struct {
	Patient       View                `json:"patient"`
	Vitals        []vital.View        `json:"vitals"`
	Prescriptions []prescription.View `json:"prescriptions"`
}

func NewChartView(c Chart) ChartView {
	return ChartView{
		Patient:       NewView(c.Patient),
		Vitals:        vital.NewViews(c.Vitals),
		Prescriptions: prescription.NewViews(c.Prescriptions),
	}
}
