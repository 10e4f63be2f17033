package prescription

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/utils/clock"
)

// Servicer интерфейс сервиса рецептов
type Servicer interface {
	List(ctx context.Context, usn string) ([]Prescription, error)
	Create(ctx context.Context, in Input) (*Prescription, error)
	AddItem(ctx context.Context, prescriptionID int64, in ItemInput) (*Item, error)
	Sheet(ctx context.Context, id int64) (*Sheet, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  clock.Func
}

func NewService(repo Repository, log *slog.Logger, now clock.Func) *Service {
	if now == nil {
		now = clock.UTC
	}
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "prescription_service")),
		now:  now,
	}
}

func (s *Service) List(ctx context.Context, usn string) ([]Prescription, error) {
	list, err := s.repo.List(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return list, nil
}

// Create выписывает рецепт. Недостающие имя, возраст и пол пациента берутся из карточки.
func (s *Service) Create(ctx context.Context, in Input) (*Prescription, error) {
	p := in.Normalize(clock.Format(s.now()))
	if p.USN == "" || p.Diagnosis == "" {
		return nil, ErrRequiredFields
	}

	info, err := s.repo.FindPatient(ctx, p.USN)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}

	if p.PatientName == nil {
		p.PatientName = &info.FullName
	}
	if p.PatientAge == nil || *p.PatientAge == 0 {
		age := info.Age
		p.PatientAge = &age
	}
	if p.PatientGender == nil {
		p.PatientGender = &info.Gender
	}

	id, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to save prescription: %w", err)
	}
	p.ID = id

	s.log.Debug("prescription created", slog.String("usn", p.USN), slog.Int64("id", id))
	return &p, nil
}

func (s *Service) AddItem(ctx context.Context, prescriptionID int64, in ItemInput) (*Item, error) {
	name := in.MedName.Trim()
	if prescriptionID <= 0 || name == "" {
		return nil, ErrItemRequiredFields
	}

	if _, err := s.repo.Get(ctx, prescriptionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	item := Item{
		PrescriptionID: prescriptionID,
		MedicationName: name,
		Dose:           in.Dose.TrimPtr(),
		Route:          in.Route.TrimPtr(),
		Frequency:      in.Frequency.TrimPtr(),
		DurationDays:   in.DurationDays.Ptr(),
		Instructions:   in.Instructions.TrimPtr(),
	}

	id, err := s.repo.AddItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add prescription item: %w", err)
	}
	item.ID = id

	return &item, nil
}

// Sheet собирает данные печатной формы рецепта.
func (s *Service) Sheet(ctx context.Context, id int64) (*Sheet, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	sheet := &Sheet{Prescription: p}

	info, err := s.repo.FindPatient(ctx, p.USN)
	switch {
	case err == nil:
		sheet.Patient = info
	case errors.Is(err, ErrPatientNotFound):
	default:
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}

	items, err := s.repo.Items(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescription items: %w", err)
	}
	sheet.Items = items

	return sheet, nil
}
