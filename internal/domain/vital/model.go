package vital

const DefaultRecordedBy = "System User"

// Vital - один замер показателей пациента. BMI считает база.
type Vital struct {
	ID               int64
	USN              string
	Weight           float64
	Height           float64
	BMI              *float64
	Systolic         int
	Diastolic        int
	HeartRate        int
	Temperature      float64
	RespiratoryRate  *int
	OxygenSaturation *int
	Notes            *string
	RecordedAt       string
	RecordedBy       string
}

// Категории артериального давления
const (
	CategoryHigh     = "High"
	CategoryElevated = "Elevated"
	CategoryNormal   = "Normal"
	CategoryLow      = "Low"
)

// Category относит давление к одной из категорий. Проверки идут от высокой к низкой.
func Category(systolic, diastolic int) string {
	switch {
	case systolic >= 140 || diastolic >= 90:
		return CategoryHigh
	case systolic >= 120 || diastolic >= 80:
		return CategoryElevated
	case systolic >= 90 && diastolic >= 60:
		return CategoryNormal
	default:
		return CategoryLow
	}
}
