package prescription

import "context"

// Repository интерфейс хранилища рецептов
type Repository interface {
	// List возвращает рецепты, новые первыми. Пустой usn - все рецепты.
	List(ctx context.Context, usn string) ([]Prescription, error)
	Get(ctx context.Context, id int64) (Prescription, error)
	// Upsert заменяет рецепт с тем же id или вставляет новый, возвращает id.
	Upsert(ctx context.Context, p Prescription) (int64, error)
	FindPatient(ctx context.Context, usn string) (*PatientInfo, error)

	// AddItem находит препарат по названию (или заводит его) и добавляет позицию.
	AddItem(ctx context.Context, item Item) (int64, error)
	Items(ctx context.Context, prescriptionID int64) ([]Item, error)
}
