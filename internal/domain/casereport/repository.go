package casereport

import (
	"context"

	"hmis/internal/domain/patient"
)

// Repository интерфейс хранилища историй болезни
type Repository interface {
	// List возвращает истории, новые первыми. Пустой usn - все.
	List(ctx context.Context, usn string) ([]CaseReport, error)
	// EnsurePatient заводит карточку-заглушку, если пациента с таким USN нет.
	EnsurePatient(ctx context.Context, p patient.Patient) error
	// Upsert обновляет историю по номеру, сохраняя дату создания.
	Upsert(ctx context.Context, r CaseReport) error
}
