package patient

import (
	"hash/fnv"

	"hmis/internal/utils/flex"
)

const (
	UnknownName   = "Unknown"
	UnknownGender = "Unknown"
)

// Patient - карточка пациента. USN - естественный ключ.
type Patient struct {
	USN      string
	FullName string
	Age      int
	Gender   string
	Contact  string
	Address  string
}

// SurrogateID - стабильный числовой идентификатор для фронтенда, которому нужен числовой id.
func SurrogateID(usn string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(usn))
	return int64(h.Sum32() % 100_000_000)
}

// Placeholder строит минимальную карточку для пациента, на которого ссылается
// документ, пришедший раньше самой карточки.
func Placeholder(usn string, name flex.String, age flex.Int, gender flex.String) Patient {
	return Patient{
		USN:      usn,
		FullName: name.Or(UnknownName),
		Age:      age.Or(0),
		Gender:   gender.Or(UnknownGender),
	}
}
