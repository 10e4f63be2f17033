package casereport

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/utils/clock"
)

// Servicer интерфейс сервиса историй болезни
type Servicer interface {
	List(ctx context.Context, usn string) ([]CaseReport, error)
	// Create возвращает номер сохранённой истории.
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
		log:  log.With(slog.String("component", "case_report_service")),
		now:  now,
	}
}

func (s *Service) List(ctx context.Context, usn string) ([]CaseReport, error) {
	list, err := s.repo.List(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("failed to list case reports: %w", err)
	}
	return list, nil
}

// Create сохраняет историю. Если пациента ещё нет, заводится заглушка.
func (s *Service) Create(ctx context.Context, in Input) (string, error) {
	r, err := in.Normalize(clock.Format(s.now()))
	if err != nil {
		return "", err
	}
	// created_at задаёт сервер
	r.CreatedAt = clock.Format(s.now())

	if err := s.repo.EnsurePatient(ctx, in.Placeholder()); err != nil {
		return "", fmt.Errorf("failed to ensure patient: %w", err)
	}
	if err := s.repo.Upsert(ctx, r); err != nil {
		return "", fmt.Errorf("failed to save case report: %w", err)
	}

	s.log.Debug("case report saved", slog.String("report_number", r.ReportNumber), slog.String("usn", r.USN))
	return r.ReportNumber, nil
}
