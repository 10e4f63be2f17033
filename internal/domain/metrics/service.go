package metrics

import (
	"context"
	"fmt"

	"hmis/internal/utils/clock"
)

type Servicer interface {
	Dashboard(ctx context.Context) (Dashboard, error)
}

type Service struct {
	repo Repository
	now  clock.Func
}

func NewService(repo Repository, now clock.Func) *Service {
	if now == nil {
		now = clock.UTC
	}
	return &Service{repo: repo, now: now}
}

// Dashboard считает «сегодня» по UTC, как и все метки времени в базе.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	day := s.now().UTC().Format(clock.DateLayout)
	d, err := s.repo.Dashboard(ctx, day)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to collect metrics: %w", err)
	}
	return d, nil
}
