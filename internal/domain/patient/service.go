package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/audit"
)

// Servicer интерфейс сервиса пациентов
type Servicer interface {
	List(ctx context.Context) ([]Patient, error)
	Create(ctx context.Context, in Input) (*Patient, error)
	Update(ctx context.Context, usn string, in Input) (*Patient, error)
	Delete(ctx context.Context, usn string) (bool, error)
	Search(ctx context.Context, q string) (*Chart, error)
}

type Service struct {
	repo          Repository
	vitals        VitalLister
	prescriptions PrescriptionLister
	audit         audit.Recorder
	log           *slog.Logger
}

func NewService(
	repo Repository,
	vitals VitalLister,
	prescriptions PrescriptionLister,
	recorder audit.Recorder,
	log *slog.Logger,
) *Service {
	return &Service{
		repo:          repo,
		vitals:        vitals,
		prescriptions: prescriptions,
		audit:         recorder,
		log:           log.With(slog.String("component", "patient_service")),
	}
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return list, nil
}

// Create регистрирует пациента или перезаписывает карточку с тем же USN.
func (s *Service) Create(ctx context.Context, in Input) (*Patient, error) {
	p := Patient{
		USN:      in.USN.Trim(),
		FullName: in.FullName.Trim(),
		Gender:   in.Gender.Trim(),
		Contact:  in.ContactOrPhone(),
		Address:  in.Address.Trim(),
	}
	if p.USN == "" || p.FullName == "" || p.Gender == "" || !in.Age.Set {
		return nil, ErrRequiredFields
	}
	if !in.Age.Valid() {
		return nil, ErrAgeNotNumber
	}
	p.Age = in.Age.Value

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save patient: %w", err)
	}

	s.log.Debug("patient saved", slog.String("usn", p.USN))
	return &p, nil
}

// Update заменяет все поля карточки. Частичное обновление не поддерживается.
func (s *Service) Update(ctx context.Context, usn string, in Input) (*Patient, error) {
	p := Patient{
		USN:      strings.TrimSpace(usn),
		FullName: in.FullName.Trim(),
		Gender:   in.Gender.Trim(),
		Contact:  in.ContactOrPhone(),
		Address:  in.Address.Trim(),
	}
	if p.USN == "" || p.FullName == "" || p.Gender == "" || p.Contact == "" || p.Address == "" || !in.Age.Set {
		return nil, ErrAllFields
	}
	if !in.Age.Valid() {
		return nil, ErrAgeNotNumber
	}
	p.Age = in.Age.Value

	ok, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}

	return &p, nil
}

// Delete удаляет пациента вместе с замерами, рецептами и прочими документами.
func (s *Service) Delete(ctx context.Context, usn string) (bool, error) {
	usn = strings.TrimSpace(usn)
	if usn == "" {
		return false, ErrUSNRequired
	}

	deleted, err := s.repo.Delete(ctx, usn)
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}

	if deleted {
		if err := s.audit.Record(ctx, "patient", usn, "delete", nil); err != nil {
			s.log.Warn("Failed to record patient deletion", "error", err, "usn", usn)
		}
	}
	return deleted, nil
}

// Search ищет пациента по USN или телефону и собирает его карту.
func (s *Service) Search(ctx context.Context, q string) (*Chart, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	p, err := s.repo.FindByUSNOrContact(ctx, q)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}

	vitals, err := s.vitals.List(ctx, p.USN)
	if err != nil {
		return nil, fmt.Errorf("failed to list vitals: %w", err)
	}
	rx, err := s.prescriptions.List(ctx, p.USN)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	return &Chart{Patient: p, Vitals: vitals, Prescriptions: rx}, nil
}
