package intimation

import (
	"context"

	"hmis/internal/domain/patient"
)

// Repository интерфейс хранилища извещений
type Repository interface {
	List(ctx context.Context, usn string) ([]Intimation, error)
	EnsurePatient(ctx context.Context, p patient.Patient) error
	// Upsert обновляет извещение по номеру, сохраняя дату создания.
	Upsert(ctx context.Context, it Intimation) error
}
