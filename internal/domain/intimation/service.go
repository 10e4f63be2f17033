package intimation

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/utils/clock"
)

// Servicer интерфейс сервиса извещений о болезни
type Servicer interface {
	List(ctx context.Context, usn string) ([]Intimation, error)
	Create(ctx context.Context, in Input) (string, error)
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
		log:  log.With(slog.String("component", "sick_intimation_service")),
		now:  now,
	}
}

func (s *Service) List(ctx context.Context, usn string) ([]Intimation, error) {
	list, err := s.repo.List(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick intimations: %w", err)
	}
	return list, nil
}

// Create сохраняет извещение и при необходимости заводит карточку-заглушку.
func (s *Service) Create(ctx context.Context, in Input) (string, error) {
	now := clock.Format(s.now())
	it, err := in.Normalize(now)
	if err != nil {
		return "", err
	}
	it.CreatedAt = now

	if err := s.repo.EnsurePatient(ctx, in.Placeholder()); err != nil {
		return "", fmt.Errorf("failed to ensure patient: %w", err)
	}
	if err := s.repo.Upsert(ctx, it); err != nil {
		return "", fmt.Errorf("failed to save sick intimation: %w", err)
	}

	s.log.Debug("sick intimation saved", slog.String("intimation_number", it.IntimationNumber))
	return it.IntimationNumber, nil
}
