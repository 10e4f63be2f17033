package vital

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/utils/clock"
)

// Servicer интерфейс сервиса замеров
type Servicer interface {
	List(ctx context.Context, usn string) ([]Vital, error)
	Create(ctx context.Context, in Input) (*Vital, error)
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
		log:  log.With(slog.String("component", "vital_service")),
		now:  now,
	}
}

func (s *Service) List(ctx context.Context, usn string) ([]Vital, error) {
	vitals, err := s.repo.List(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("failed to list vitals: %w", err)
	}
	return vitals, nil
}

// Create сохраняет замер и перечитывает его, чтобы вернуть вычисленный базой BMI.
func (s *Service) Create(ctx context.Context, in Input) (*Vital, error) {
	v, err := in.Normalize(clock.Format(s.now()))
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.PatientExists(ctx, v.USN)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	id, err := s.repo.Upsert(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("failed to save vitals: %w", err)
	}

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload vitals: %w", err)
	}

	s.log.Debug("vitals recorded", slog.String("usn", v.USN), slog.Int64("id", id))
	return &stored, nil
}
