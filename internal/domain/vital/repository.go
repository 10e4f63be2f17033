package vital

import "context"

// Repository интерфейс хранилища замеров
type Repository interface {
	// List возвращает замеры, новые первыми. Пустой usn - все замеры.
	List(ctx context.Context, usn string) ([]Vital, error)
	Get(ctx context.Context, id int64) (Vital, error)
	// Upsert заменяет замер с тем же id или вставляет новый, возвращает id.
	Upsert(ctx context.Context, v Vital) (int64, error)
	PatientExists(ctx context.Context, usn string) (bool, error)
}
