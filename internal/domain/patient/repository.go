package patient

import (
	"context"

	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
)

// Repository интерфейс хранилища пациентов
type Repository interface {
	// List возвращает всех пациентов по алфавиту.
	List(ctx context.Context) ([]Patient, error)
	Get(ctx context.Context, usn string) (Patient, error)
	// FindByUSNOrContact ищет пациента по USN или телефону.
	FindByUSNOrContact(ctx context.Context, q string) (Patient, error)
	// Upsert вставляет карточку или обновляет существующую, не трогая зависимые записи.
	Upsert(ctx context.Context, p Patient) error
	// Update возвращает false, если карточки нет.
	Update(ctx context.Context, p Patient) (bool, error)
	// Delete удаляет карточку каскадом, возвращает false, если удалять нечего.
	Delete(ctx context.Context, usn string) (bool, error)
}

// VitalLister - источник замеров для карты пациента.
type VitalLister interface {
	List(ctx context.Context, usn string) ([]vital.Vital, error)
}

// PrescriptionLister - источник рецептов для карты пациента.
type PrescriptionLister interface {
	List(ctx context.Context, usn string) ([]prescription.Prescription, error)
}
