package sync

import (
	"context"

	"hmis/internal/domain/casereport"
	"hmis/internal/domain/intimation"
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
)

// Batch - транзакция одного пакета синхронизации.
type Batch interface {
	// Within выполняет fn как одну запись: при ошибке все её изменения откатываются,
	// изменения остальных записей пакета остаются.
	Within(ctx context.Context, fn func(ctx context.Context) error) error

	PatientExists(ctx context.Context, usn string) (bool, error)
	// EnsurePatient вставляет карточку, только если пациента с таким USN нет.
	EnsurePatient(ctx context.Context, p patient.Patient) error
	// UpsertPatient обновляет карточку на месте, зависимые записи не затрагиваются.
	UpsertPatient(ctx context.Context, p patient.Patient) error
	UpsertVital(ctx context.Context, v vital.Vital) error
	UpsertPrescription(ctx context.Context, p prescription.Prescription) error
	UpsertCaseReport(ctx context.Context, r casereport.CaseReport) error
	UpsertSickIntimation(ctx context.Context, it intimation.Intimation) error

	Commit() error
	Rollback() error
}

// Repository интерфейс хранилища для синхронизации
type Repository interface {
	BeginBatch(ctx context.Context) (Batch, error)
	Counts(ctx context.Context) (Counts, error)
}
