package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/utils/clock"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Recorder пишет записи в журнал. Его получают сервисы, которым нужен аудит.
type Recorder interface {
	Record(ctx context.Context, entity, entityID, action string, details any) error
}

// Servicer интерфейс сервиса журнала
type Servicer interface {
	Recorder
	List(ctx context.Context, limit int) ([]Entry, error)
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
		log:  log.With(slog.String("component", "audit_service")),
		now:  now,
	}
}

// Record сохраняет событие. details сериализуется в JSON, nil не пишется.
func (s *Service) Record(ctx context.Context, entity, entityID, action string, details any) error {
	e := Entry{
		OccurredAt: clock.Format(s.now()),
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
	}
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}
		e.Details = string(b)
	}

	if _, err := s.repo.Insert(ctx, e); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	s.log.Debug("audit entry recorded",
		slog.String("entity", entity),
		slog.String("entity_id", entityID),
		slog.String("action", action),
	)
	return nil
}

// List ограничивает limit диапазоном [1, MaxLimit], 0 и меньше - DefaultLimit.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
