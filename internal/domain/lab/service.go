package lab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"hmis/internal/utils/clock"
)

// Servicer интерфейс сервиса лаборатории
type Servicer interface {
	Tests(ctx context.Context) ([]Test, error)
	CreateOrder(ctx context.Context, in OrderInput) (int64, error)
	ListOrders(ctx context.Context, usn string) ([]OrderLine, error)
	SetResult(ctx context.Context, itemID int64, in ResultInput) error
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
		log:  log.With(slog.String("component", "lab_service")),
		now:  now,
	}
}

func (s *Service) Tests(ctx context.Context) ([]Test, error) {
	tests, err := s.repo.ActiveTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab tests: %w", err)
	}
	return tests, nil
}

func (s *Service) CreateOrder(ctx context.Context, in OrderInput) (int64, error) {
	usn, code := in.USN.Trim(), in.TestCode.Trim()
	if usn == "" || code == "" {
		return 0, ErrRequiredFields
	}

	exists, err := s.repo.PatientExists(ctx, usn)
	if err != nil {
		return 0, fmt.Errorf("failed to check patient: %w", err)
	}
	if !exists {
		return 0, ErrPatientNotFound
	}

	test, err := s.repo.FindActiveTest(ctx, code)
	if err != nil {
		if errors.Is(err, ErrTestNotFound) {
			return 0, ErrTestNotFound
		}
		return 0, fmt.Errorf("failed to find lab test: %w", err)
	}

	order := Order{
		USN:       usn,
		OrderedAt: clock.Format(s.now()),
		Status:    StatusOrdered,
		Notes:     in.Notes.TrimPtr(),
	}
	id, err := s.repo.CreateOrder(ctx, order, test.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create lab order: %w", err)
	}

	s.log.Debug("lab order created", slog.Int64("id", id), slog.String("test", test.Code))
	return id, nil
}

func (s *Service) ListOrders(ctx context.Context, usn string) ([]OrderLine, error) {
	usn = strings.TrimSpace(usn)
	limit := 0
	if usn == "" {
		limit = ListLimit
	}

	lines, err := s.repo.ListOrders(ctx, usn, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab orders: %w", err)
	}
	return lines, nil
}

func (s *Service) SetResult(ctx context.Context, itemID int64, in ResultInput) error {
	ok, err := s.repo.SetResult(ctx, Result{
		ItemID: itemID,
		Value:  in.ResultValue.Trim(),
		Notes:  in.ResultNotes.TrimPtr(),
		At:     clock.Format(s.now()),
	})
	if err != nil {
		return fmt.Errorf("failed to set lab result: %w", err)
	}
	if !ok {
		return ErrItemNotFound
	}
	return nil
}
