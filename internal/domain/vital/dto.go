package vital

import (
	"hmis/internal/utils/flex"
)

// Input - замер в том виде, в каком его присылает фронтенд или офлайн-клиент.
type Input struct {
	ID                     flex.Int    `json:"id"`
	USN                    flex.String `json:"usn"`
	Weight                 flex.Float  `json:"weight"`
	Height                 flex.Float  `json:"height"`
	BloodPressureSystolic  flex.Int    `json:"bloodPressureSystolic"`
	BloodPressureDiastolic flex.Int    `json:"bloodPressureDiastolic"`
	HeartRate              flex.Int    `json:"heartRate"`
	Temperature            flex.Float  `json:"temperature"`
	RespiratoryRate        flex.Int    `json:"respiratoryRate"`
	OxygenSaturation       flex.Int    `json:"oxygenSaturation"`
	Notes                  flex.String `json:"notes"`
	RecordedAt             flex.String `json:"recordedAt"`
	RecordedBy             flex.String `json:"recordedBy"`
}

// Normalize проверяет обязательные измерения и подставляет значения по умолчанию.
// now - метка времени для recordedAt, если клиент ее не прислал.
func (in Input) Normalize(now string) (Vital, error) {
	usn := in.USN.Trim()
	if usn == "" ||
		!in.Weight.Set || !in.Height.Set ||
		!in.BloodPressureSystolic.Set || !in.BloodPressureDiastolic.Set ||
		!in.HeartRate.Set || !in.Temperature.Set {
		return Vital{}, ErrMissingFields
	}

	if !in.Weight.Valid() || !in.Height.Valid() || !in.Temperature.Valid() ||
		!in.BloodPressureSystolic.Valid() || !in.BloodPressureDiastolic.Valid() ||
		!in.HeartRate.Valid() ||
		in.RespiratoryRate.Invalid || in.OxygenSaturation.Invalid {
		return Vital{}, ErrInvalidNumeric
	}

	v := Vital{
		USN:              usn,
		Weight:           in.Weight.Value,
		Height:           in.Height.Value,
		Systolic:         in.BloodPressureSystolic.Value,
		Diastolic:        in.BloodPressureDiastolic.Value,
		HeartRate:        in.HeartRate.Value,
		Temperature:      in.Temperature.Value,
		RespiratoryRate:  in.RespiratoryRate.Ptr(),
		OxygenSaturation: in.OxygenSaturation.Ptr(),
		RecordedAt:       in.RecordedAt.Or(now),
		RecordedBy:       in.RecordedBy.Or(DefaultRecordedBy),
	}
	if in.Notes.Set {
		notes := in.Notes.Trim()
		v.Notes = &notes
	}
	if in.ID.Valid() && in.ID.Value > 0 {
		v.ID = int64(in.ID.Value)
	}

	return v, nil
}

// View - замер в формате фронтенда.
type View struct {
	ID                     int64    `json:"id"`
	USN                    string   `json:"usn"`
	Weight                 float64  `json:"weight"`
	Height                 float64  `json:"height"`
	BMI                    *float64 `json:"bmi"`
	BloodPressureSystolic  int      `json:"bloodPressureSystolic"`
	BloodPressureDiastolic int      `json:"bloodPressureDiastolic"`
	HeartRate              int      `json:"heartRate"`
	Temperature            float64  `json:"temperature"`
	RespiratoryRate        *int     `json:"respiratoryRate"`
	OxygenSaturation       *int     `json:"oxygenSaturation"`
	Notes                  *string  `json:"notes"`
	RecordedAt             string   `json:"recordedAt"`
	RecordedBy             string   `json:"recordedBy"`
}

func NewView(v Vital) View {
	return View{
		ID:                     v.ID,
		USN:                    v.USN,
		Weight:                 v.Weight,
		Height:                 v.Height,
		BMI:                    v.BMI,
		BloodPressureSystolic:  v.Systolic,
		BloodPressureDiastolic: v.Diastolic,
		HeartRate:              v.HeartRate,
		Temperature:            v.Temperature,
		RespiratoryRate:        v.RespiratoryRate,
		OxygenSaturation:       v.OxygenSaturation,
		Notes:                  v.Notes,
		RecordedAt:             v.RecordedAt,
		RecordedBy:             v.RecordedBy,
	}
}

func NewViews(vs []Vital) []View {
	out := make([]View, 0, len(vs))
	for _, v := range vs {
		out = append(out, NewView(v))
	}
	return out
}
