package appointment

import "context"

// Repository интерфейс хранилища записей на приём
type Repository interface {
	// List возвращает записи по убыванию времени начала. Пустой usn - последние limit записей.
	List(ctx context.Context, usn string, limit int) ([]Appointment, error)
	PatientExists(ctx context.Context, usn string) (bool, error)
	Create(ctx context.Context, a Appointment) (int64, error)
	// Update возвращает false, если записи с таким id нет.
	Update(ctx context.Context, id int64, p Patch) (bool, error)
	Delete(ctx context.Context, id int64) error
}
