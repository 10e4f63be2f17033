package prescription

import (
	"encoding/json"
	"strings"
)

// EncodeMedications сериализует список препаратов в компактный JSON для колонки medications.
// Пустой список хранится как "[]".
func EncodeMedications(meds []Medication) (string, error) {
	if len(meds) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(meds)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseMedications строго разбирает колонку medications.
func ParseMedications(raw string) ([]Medication, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Medication{}, nil
	}
	var list MedicationList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list.Medications(), nil
}

// DecodeMedications разбирает колонку medications. Пустое или битое значение дает пустой список.
func DecodeMedications(raw string) []Medication {
	meds, err := ParseMedications(raw)
	if err != nil {
		return []Medication{}
	}
	return meds
}
