package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/audit"
	"hmis/internal/utils/clock"
)

// Servicer интерфейс сервиса синхронизации
type Servicer interface {
	// Reconcile применяет пакет записей одного вида и фиксирует его одной транзакцией.
	Reconcile(ctx context.Context, entity Entity, body []byte) (*Report, error)
	// Status возвращает число записей в синхронизируемых таблицах.
	Status(ctx context.Context) (*Status, error)
}

type Service struct {
	repo   Repository
	engine *Engine
	audit  audit.Recorder
	log    *slog.Logger
	now    clock.Func
}

func NewService(repo Repository, recorder audit.Recorder, log *slog.Logger, now clock.Func) *Service {
	if now == nil {
		now = clock.UTC
	}
	return &Service{
		repo:   repo,
		engine: NewEngine(log),
		audit:  recorder,
		log:    log.With(slog.String("component", "sync_service")),
		now:    now,
	}
}

// Reconcile разбирает тело, применяет записи и делает один commit на пакет.
// Ошибка открытия или фиксации транзакции возвращается как сбой всего пакета.
// Отмена запроса клиентом пакет не прерывает.
func (s *Service) Reconcile(ctx context.Context, entity Entity, body []byte) (*Report, error) {
	candidates, err := DecodeBatch(entity, body)
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	batch, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync batch: %w", err)
	}

	report := s.engine.Reconcile(ctx, entity, batch, candidates, clock.Format(s.now()))

	if err := batch.Commit(); err != nil {
		if rbErr := batch.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return nil, fmt.Errorf("failed to commit sync batch: %w", err)
	}

	batchID := uuid.NewString()
	s.log.Info("sync batch committed",
		slog.String("batch_id", batchID),
		slog.String("entity", string(entity)),
		slog.Int("received", report.Received),
		slog.Int("synced", report.Synced),
		slog.Int("skipped", report.Skipped),
	)

	details := map[string]int{
		"total_received": report.Received,
		"synced_count":   report.Synced,
		"skipped_count":  report.Skipped,
	}
	if err := s.audit.Record(ctx, "sync:"+string(entity), batchID, "reconcile", details); err != nil {
		s.log.Warn("Failed to record sync batch", "error", err)
	}

	return report, nil
}

func (s *Service) Status(ctx context.Context) (*Status, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	return &Status{Counts: counts, LastUpdated: clock.Format(s.now())}, nil
}
