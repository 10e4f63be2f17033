package appointment

import "hmis/internal/utils/flex"

// Input - запись на приём, поля в snake_case как у фронтенда расписания.
type Input struct {
	USN       flex.String `json:"usn"`
	StartsAt  flex.String `json:"starts_at"`
	EndsAt    flex.String `json:"ends_at"`
	Status    flex.String `json:"status"`
	Title     flex.String `json:"title"`
	Clinician flex.String `json:"clinician"`
	Notes     flex.String `json:"notes"`
}

// Patch переводит пустые строки в nil, чтобы они не затирали сохранённые значения.
func (in Input) Patch() Patch {
	return Patch{
		Status:    in.Status.TrimPtr(),
		Title:     in.Title.TrimPtr(),
		Clinician: in.Clinician.TrimPtr(),
		Notes:     in.Notes.TrimPtr(),
		StartsAt:  in.StartsAt.TrimPtr(),
		EndsAt:    in.EndsAt.TrimPtr(),
	}
}

type View struct {
	ID        int64   `json:"id"`
	USN       string  `json:"usn"`
	StartsAt  string  `json:"starts_at"`
	EndsAt    string  `json:"ends_at"`
	Status    string  `json:"status"`
	Title     *string `json:"title"`
	Clinician *string `json:"clinician"`
	Notes     *string `json:"notes"`
}

func NewViews(list []Appointment) []View {
	out := make([]View, 0, len(list))
	for _, a := range list {
		out = append(out, View(a))
	}
	return out
}
