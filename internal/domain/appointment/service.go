package appointment

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

// Servicer интерфейс сервиса расписания
type Servicer interface {
	List(ctx context.Context, usn string) ([]Appointment, error)
	Create(ctx context.Context, in Input) (int64, error)
	Update(ctx context.Context, id int64, in Input) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "appointment_service")),
	}
}

func (s *Service) List(ctx context.Context, usn string) ([]Appointment, error) {
	usn = strings.TrimSpace(usn)
	limit := 0
	if usn == "" {
		limit = ListLimit
	}

	list, err := s.repo.List(ctx, usn, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, in Input) (int64, error) {
	a := Appointment{
		USN:       in.USN.Trim(),
		StartsAt:  in.StartsAt.Trim(),
		EndsAt:    in.EndsAt.Trim(),
		Status:    StatusScheduled,
		Title:     in.Title.TrimPtr(),
		Clinician: in.Clinician.TrimPtr(),
		Notes:     in.Notes.TrimPtr(),
	}
	if a.USN == "" || a.StartsAt == "" || a.EndsAt == "" {
		return 0, ErrRequiredFields
	}

	exists, err := s.repo.PatientExists(ctx, a.USN)
	if err != nil {
		return 0, fmt.Errorf("failed to check patient: %w", err)
	}
	if !exists {
		return 0, ErrPatientNotFound
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.log.Debug("appointment created", slog.Int64("id", id), slog.String("usn", a.USN))
	return id, nil
}

// Update меняет только переданные непустые поля.
func (s *Service) Update(ctx context.Context, id int64, in Input) error {
	ok, err := s.repo.Update(ctx, id, in.Patch())
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete идемпотентен: удаление отсутствующей записи не ошибка.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
