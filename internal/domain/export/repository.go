package export

import (
	"context"

	"hmis/internal/domain/patient"
)

// Repository - выборки для выгрузок.
type Repository interface {
	Patients(ctx context.Context) ([]patient.Patient, error)
	Vitals(ctx context.Context) ([]VitalRow, error)
	Prescriptions(ctx context.Context) ([]PrescriptionRow, error)
	Summaries(ctx context.Context) ([]Summary, error)
	Legacy(ctx context.Context) (Legacy, error)
}
